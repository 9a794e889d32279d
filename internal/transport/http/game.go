package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/rs/zerolog/log"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
	Color      string `json:"color"`
}

type createGameResponse struct {
	GameID string           `json:"gameId"`
	Token  string           `json:"token"`
	State  domain.GameState `json:"state"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

// CreateGame starts a game against the bot. An empty body plays yellow at
// medium difficulty.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Difficulty == "" {
		req.Difficulty = bot.DifficultyMedium
	}
	req.Difficulty = strings.ToLower(req.Difficulty)
	if !bot.IsValidDifficulty(req.Difficulty) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "difficulty must be easy, medium or hard"})
		return
	}

	if req.Color == "" {
		req.Color = "yellow"
	}
	color, err := domain.ParseColor(req.Color)
	if err != nil {
		abortWithError(c, err)
		return
	}

	session, err := h.SessionManager.CreateSession(c.Request.Context(), req.Difficulty, color)
	if err != nil {
		abortWithError(c, err)
		return
	}

	state := session.State()
	token, err := auth.GenerateGameToken(session.GameID, state.YourColor)
	if err != nil {
		log.Error().Err(err).Str("component", "http").Str("game_id", session.GameID).Msg("failed to sign game token")
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{GameID: session.GameID, Token: token, State: state})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.SessionManager.GetSession(c.Param("id"))
	if !ok {
		abortWithError(c, game.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// MakeMove plays the token holder's column and returns the state after the
// bot has answered.
func (h *GameHandler) MakeMove(c *gin.Context) {
	gameID := c.Param("id")
	if c.GetString(middleware.GameIDKey) != gameID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not belong to this game"})
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	state, err := h.SessionManager.HandleMove(c.Request.Context(), gameID, *req.Column)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetLiveGames lists games still in progress.
func (h *GameHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveGames())
}
