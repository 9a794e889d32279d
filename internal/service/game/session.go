package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/player"
	"github.com/iamasit07/connect4-engine/pkg/uid"
	"github.com/rs/zerolog/log"
)

const ErrSessionNotFound domain.Error = "game not found"

type GameRepository interface {
	SaveGame(ctx context.Context, record *domain.GameRecord) error
}

// Notifier pushes state changes to whoever watches a game and disconnects
// them once the game is gone.
type Notifier interface {
	Broadcast(gameID string, message domain.ServerMessage)
	Close(gameID, reason string)
}

// GameSession is one game of a human against the bot.
type GameSession struct {
	GameID       string
	HumanColor   domain.Cell
	Difficulty   string
	Game         *domain.Game
	Reason       string
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time

	bot player.Player
	mu  sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session  map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	repo     GameRepository
	engine   *bot.Engine
	notifier Notifier
	saves    sync.WaitGroup
}

// NewSessionManager builds a manager. repo may be nil when games are not stored.
func NewSessionManager(repo GameRepository, engine *bot.Engine) *SessionManager {
	return &SessionManager{
		Session: make(map[string]*GameSession),
		repo:    repo,
		engine:  engine,
	}
}

func (sm *SessionManager) SetNotifier(n Notifier) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.notifier = n
}

// CreateSession starts a game. When the human plays red the bot opens.
func (sm *SessionManager) CreateSession(ctx context.Context, difficulty string, humanColor domain.Cell) (*GameSession, error) {
	if difficulty == "" {
		difficulty = bot.DifficultyMedium
	}
	p, err := player.New(player.KindBot, player.Options{Engine: sm.engine, Difficulty: difficulty})
	if err != nil {
		return nil, err
	}
	if humanColor == domain.Empty {
		return nil, domain.ErrUnknownColor
	}

	gameID, err := uid.GenerateGameID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &GameSession{
		GameID:       gameID,
		HumanColor:   humanColor,
		Difficulty:   difficulty,
		Game:         domain.NewGame(),
		CreatedAt:    now,
		LastActivity: now,
		bot:          p,
	}

	if humanColor == domain.Red {
		session.mu.Lock()
		err := session.playBot(ctx)
		session.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}

	sm.mu.Lock()
	sm.Session[gameID] = session
	sm.mu.Unlock()

	log.Info().
		Str("component", "session").
		Str("game_id", gameID).
		Str("difficulty", difficulty).
		Str("human", humanColor.Name()).
		Msg("created session")
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	if _, exists := sm.Session[gameID]; !exists {
		sm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	sm.closeWatchers(gameID, "game removed")
	log.Info().Str("component", "session").Str("game_id", gameID).Msg("removed session")
	return nil
}

// ActiveGames lists the state of every game still in progress.
func (sm *SessionManager) ActiveGames() []domain.GameState {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, s := range sm.Session {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	games := make([]domain.GameState, 0, len(sessions))
	for _, s := range sessions {
		state := s.State()
		if state.Status == domain.StatusActive {
			games = append(games, state)
		}
	}
	return games
}

// HandleMove plays the human's column and, unless that ended the game, the
// bot's reply.
func (sm *SessionManager) HandleMove(ctx context.Context, gameID string, column int) (domain.GameState, error) {
	session, ok := sm.GetSession(gameID)
	if !ok {
		return domain.GameState{}, ErrSessionNotFound
	}

	session.mu.Lock()
	if session.Game.IsFinished() {
		session.mu.Unlock()
		return domain.GameState{}, domain.ErrGameOver
	}
	if session.Game.CurrentPlayer != session.HumanColor {
		session.mu.Unlock()
		return domain.GameState{}, domain.ErrNotYourTurn
	}

	if _, err := session.Game.MakeMove(session.HumanColor, column); err != nil {
		session.mu.Unlock()
		return domain.GameState{}, err
	}
	session.LastActivity = time.Now()

	if !session.Game.IsFinished() {
		if err := session.playBot(ctx); err != nil {
			// take the human move back so it can be sent again
			undoErr := session.Game.Undo()
			session.mu.Unlock()
			log.Error().Err(err).Str("component", "bot").Str("game_id", gameID).Msg("bot failed to move")
			if undoErr != nil {
				return domain.GameState{}, fmt.Errorf("%w (undo failed: %v)", err, undoErr)
			}
			return domain.GameState{}, err
		}
	}

	finished := session.Game.IsFinished()
	if finished {
		session.finish()
	}
	state := session.stateLocked()
	var record *domain.GameRecord
	if finished {
		record = session.recordLocked()
	}
	session.mu.Unlock()

	if record != nil {
		sm.saveGameAsync(record)
	}
	sm.broadcast(gameID, domain.ServerMessage{Type: "state", State: &state})
	return state, nil
}

// playBot makes the bot's move. Caller must hold the session lock.
func (gs *GameSession) playBot(ctx context.Context) error {
	color := gs.HumanColor.Flip()
	column, err := gs.bot.NextMove(ctx, gs.Game.Board, color)
	if err != nil {
		return err
	}
	_, err = gs.Game.MakeMove(color, column)
	return err
}

func (gs *GameSession) finish() {
	gs.FinishedAt = time.Now()
	if gs.Game.Status == domain.StatusDraw {
		gs.Reason = domain.ReasonDraw
	} else {
		gs.Reason = domain.ReasonConnectFour
	}
}

func (gs *GameSession) State() domain.GameState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateLocked()
}

func (gs *GameSession) stateLocked() domain.GameState {
	g := gs.Game
	moves := make([]domain.Move, len(g.Moves))
	copy(moves, g.Moves)

	state := domain.GameState{
		GameID:      gs.GameID,
		Board:       g.Board.Grid(),
		Status:      g.Status,
		CurrentTurn: strings.ToLower(g.CurrentPlayer.Name()),
		YourColor:   strings.ToLower(gs.HumanColor.Name()),
		Reason:      gs.Reason,
		Difficulty:  gs.Difficulty,
		Opponent:    bot.GetBotName(gs.Difficulty),
		ValidMoves:  g.Board.ListValidMoves(),
		Moves:       moves,
		Eval:        g.Board.Eval(),
	}
	if g.Status == domain.StatusWon {
		state.Winner = strings.ToLower(g.Winner.Name())
	}
	if g.IsFinished() {
		state.ValidMoves = []int{}
	}
	if len(moves) > 0 {
		last := moves[len(moves)-1]
		state.LastMove = &last
	}
	return state
}

func (gs *GameSession) recordLocked() *domain.GameRecord {
	finishedAt := gs.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	columns := make([]int, len(gs.Game.Moves))
	for i, m := range gs.Game.Moves {
		columns[i] = m.Column
	}

	record := &domain.GameRecord{
		GameID:          gs.GameID,
		HumanColor:      strings.ToLower(gs.HumanColor.Name()),
		Difficulty:      gs.Difficulty,
		Reason:          gs.Reason,
		TotalMoves:      len(columns),
		Moves:           columns,
		BoardState:      gs.Game.Board.Grid(),
		DurationSeconds: int(finishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      finishedAt,
	}
	if gs.Game.Status == domain.StatusWon {
		record.Winner = strings.ToLower(gs.Game.Winner.Name())
	}
	return record
}

func (sm *SessionManager) broadcast(gameID string, message domain.ServerMessage) {
	sm.mu.RLock()
	n := sm.notifier
	sm.mu.RUnlock()
	if n != nil {
		n.Broadcast(gameID, message)
	}
}

func (sm *SessionManager) closeWatchers(gameID, reason string) {
	sm.mu.RLock()
	n := sm.notifier
	sm.mu.RUnlock()
	if n != nil {
		n.Close(gameID, reason)
	}
}

// saveGameAsync stores a finished game in the background so replies are not
// held up by the database.
func (sm *SessionManager) saveGameAsync(record *domain.GameRecord) {
	if sm.repo == nil {
		return
	}

	sm.saves.Add(1)
	go func() {
		defer sm.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := sm.repo.SaveGame(ctx, record); err != nil {
			log.Error().Err(err).Str("component", "game").Str("game_id", record.GameID).Msg("error saving game")
			return
		}
		log.Info().Str("component", "game").Str("game_id", record.GameID).Msg("game saved")
	}()
}

// WaitForSaves blocks until background saves have finished.
func (sm *SessionManager) WaitForSaves() {
	sm.saves.Wait()
}

// CleanupStale drops sessions idle for longer than maxIdle. Unfinished games are
// stored as abandoned. It returns how many sessions were removed.
func (sm *SessionManager) CleanupStale(maxIdle time.Duration) int {
	now := time.Now()

	sm.mu.Lock()
	var stale []*GameSession
	for gameID, session := range sm.Session {
		session.mu.Lock()
		idle := now.Sub(session.LastActivity) > maxIdle
		session.mu.Unlock()
		if idle {
			stale = append(stale, session)
			delete(sm.Session, gameID)
		}
	}
	sm.mu.Unlock()

	for _, session := range stale {
		session.mu.Lock()
		var record *domain.GameRecord
		if !session.Game.IsFinished() && session.Game.MoveCount() > 0 {
			session.Reason = domain.ReasonAbandoned
			session.FinishedAt = now
			record = session.recordLocked()
		}
		session.mu.Unlock()
		if record != nil {
			sm.saveGameAsync(record)
		}
		sm.closeWatchers(session.GameID, "game expired after inactivity")
	}

	if len(stale) > 0 {
		log.Info().Str("component", "session").Int("removed", len(stale)).Msg("memory cleanup")
	}
	return len(stale)
}
