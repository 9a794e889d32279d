package httputil

import (
	"errors"
	"net/http"
	"strings"
)

var ErrNoToken = errors.New("no game token found in header or query")

// GetTokenFromRequest reads the game token from the Authorization header, or
// from the token query parameter for WebSocket upgrades where browsers cannot
// set headers.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			authHeader = token
		}
		if authHeader = strings.TrimSpace(authHeader); authHeader != "" {
			return authHeader, nil
		}
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}
