package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfig(t *testing.T, secret string, ttl time.Duration) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: secret, GameTokenTTL: ttl}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGameTokenRoundTrip(t *testing.T) {
	withConfig(t, "test-secret", time.Hour)

	token, err := GenerateGameToken("game-1", "red")
	require.NoError(t, err)

	claims, err := ValidateGameToken(token)
	require.NoError(t, err)
	assert.Equal(t, "game-1", claims.GameID)
	assert.Equal(t, "red", claims.Color)
	assert.Equal(t, "game-1", claims.Subject)
}

func TestGameTokenRejectsOtherSecret(t *testing.T) {
	withConfig(t, "first", time.Hour)
	token, err := GenerateGameToken("game-1", "yellow")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "second"
	_, err = ValidateGameToken(token)
	assert.Error(t, err)
}

func TestGameTokenExpires(t *testing.T) {
	withConfig(t, "test-secret", -time.Minute)
	token, err := GenerateGameToken("game-1", "yellow")
	require.NoError(t, err)

	_, err = ValidateGameToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGameTokenRejectsGarbage(t *testing.T) {
	withConfig(t, "test-secret", time.Hour)
	_, err := ValidateGameToken("not-a-token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &GameClaims{GameID: "game-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateGameToken(unsigned)
	assert.Error(t, err)
}
