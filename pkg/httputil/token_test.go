package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		url    string
		want   string
	}{
		{"bearer header", "Bearer abc", "/", "abc"},
		{"raw header", "abc", "/", "abc"},
		{"query", "", "/ws?token=xyz", "xyz"},
		{"header wins", "Bearer abc", "/ws?token=xyz", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			token, err := GetTokenFromRequest(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestGetTokenFromRequestMissing(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer ")
	_, err := GetTokenFromRequest(r)
	assert.ErrorIs(t, err, ErrNoToken)
}
