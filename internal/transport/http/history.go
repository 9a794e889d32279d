package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
)

type GameStore interface {
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
	ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
}

// HistoryHandler serves stored games. Store is nil when the server runs
// without a database.
type HistoryHandler struct {
	Store GameStore
}

func NewHistoryHandler(store GameStore) *HistoryHandler {
	return &HistoryHandler{Store: store}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Store == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "history is not enabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = n
	}

	games, err := h.Store.ListRecentGames(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if h.Store == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "history is not enabled"})
		return
	}

	record, err := h.Store.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if record == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}
