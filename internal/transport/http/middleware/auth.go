package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
)

const (
	GameIDKey = "game_id"
	ColorKey  = "color"
)

// GameAuth validates the game token and stores its game id and color in the
// gin context for the handlers behind it.
func GameAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateGameToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(GameIDKey, claims.GameID)
		c.Set(ColorKey, claims.Color)
		c.Next()
	}
}
