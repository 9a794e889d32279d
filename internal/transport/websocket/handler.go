package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler creates a handler. Browsers connecting from an origin outside
// allowedOrigins are refused; clients without an Origin header are accepted.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket authenticates the game token and upgrades the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
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

	session, ok := h.SessionManager.GetSession(claims.GameID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("upgrade error")
		return
	}

	h.handleConnection(session, conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(session *game.GameSession, conn *websocket.Conn) {
	gameID := session.GameID
	cl := h.ConnManager.AddConnection(gameID, conn)
	defer h.ConnManager.RemoveConnection(gameID, cl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := log.With().Str("component", "ws").Str("game_id", gameID).Logger()
	logger.Info().Msg("connection opened")

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	state := session.State()
	if err := cl.send(domain.ServerMessage{Type: "state", State: &state}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("disconnected unexpectedly")
			}
			break
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = cl.send(domain.ServerMessage{Type: "error", Message: "invalid message format"})
			continue
		}

		h.processMessage(ctx, cl, session, msg)
	}

	logger.Info().Msg("connection closed")
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, cl *client, session *game.GameSession, msg domain.ClientMessage) {
	switch msg.Type {
	case "move":
		// the resulting state reaches this socket through Broadcast
		_, err := h.SessionManager.HandleMove(ctx, session.GameID, msg.Column)
		if err != nil {
			message := err.Error()
			if errors.Is(err, game.ErrSessionNotFound) {
				message = "Game not found"
			}
			_ = cl.send(domain.ServerMessage{Type: "error", Message: message})
		}

	case "state":
		state := session.State()
		_ = cl.send(domain.ServerMessage{Type: "state", State: &state})

	default:
		_ = cl.send(domain.ServerMessage{Type: "error", Message: "unknown message type: " + msg.Type})
	}
}
