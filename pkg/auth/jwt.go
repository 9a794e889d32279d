package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/connect4-engine/internal/config"
)

// GameClaims lets the holder play one color in one game.
type GameClaims struct {
	GameID string `json:"game_id"`
	Color  string `json:"color"`
	jwt.RegisteredClaims
}

// GenerateGameToken signs a token for the human side of gameID.
func GenerateGameToken(gameID, color string) (string, error) {
	secret := config.AppConfig.JWTSecret
	ttl := config.AppConfig.GameTokenTTL

	now := time.Now()
	claims := &GameClaims{
		GameID: gameID,
		Color:  color,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGameToken checks signature and expiry and returns the claims
func ValidateGameToken(tokenString string) (*GameClaims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
