package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/rs/zerolog/log"
)

const writeWait = 10 * time.Second

// client is one socket watching a game. WriteJSON is not safe for concurrent
// use, so every write goes through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) send(message domain.ServerMessage) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteJSON(message)
}

// ConnectionManager tracks the sockets of every game. It satisfies
// game.Notifier.
type ConnectionManager struct {
	games map[string]map[*client]struct{}
	mu    sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[*client]struct{}),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) *client {
	cl := &client{conn: conn}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	clients, ok := cm.games[gameID]
	if !ok {
		clients = make(map[*client]struct{})
		cm.games[gameID] = clients
	}
	clients[cl] = struct{}{}
	return cl
}

// RemoveConnection closes the socket and forgets it.
func (cm *ConnectionManager) RemoveConnection(gameID string, cl *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	clients, ok := cm.games[gameID]
	if !ok {
		return
	}
	if _, ok := clients[cl]; ok {
		cl.conn.Close()
		delete(clients, cl)
	}
	if len(clients) == 0 {
		delete(cm.games, gameID)
	}
}

// Count reports how many sockets are attached to gameID.
func (cm *ConnectionManager) Count(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

// Broadcast sends message to every socket of gameID. Failed writes are logged;
// the reader side of that socket notices the broken connection and removes it.
func (cm *ConnectionManager) Broadcast(gameID string, message domain.ServerMessage) {
	cm.mu.RLock()
	clients := make([]*client, 0, len(cm.games[gameID]))
	for cl := range cm.games[gameID] {
		clients = append(clients, cl)
	}
	cm.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.send(message); err != nil {
			log.Debug().Err(err).Str("component", "ws").Str("game_id", gameID).Msg("broadcast write failed")
		}
	}
}

// Close implements game.Notifier for games that were removed.
func (cm *ConnectionManager) Close(gameID, reason string) {
	cm.CloseGame(gameID, reason)
}

// CloseGame says goodbye to every socket of gameID and closes them.
func (cm *ConnectionManager) CloseGame(gameID, reason string) {
	cm.mu.Lock()
	clients := cm.games[gameID]
	delete(cm.games, gameID)
	cm.mu.Unlock()

	for cl := range clients {
		_ = cl.send(domain.ServerMessage{Type: "force_disconnect", Message: reason})
		cl.conn.Close()
	}
}
