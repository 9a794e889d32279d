package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrMalformedBoard),
		errors.Is(err, domain.ErrUnknownColor):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
