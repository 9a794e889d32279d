package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	records []*domain.GameRecord
}

func (f *fakeRepo) SaveGame(_ context.Context, record *domain.GameRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRepo) saved() []*domain.GameRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.GameRecord(nil), f.records...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages map[string][]domain.ServerMessage
	closed   []string
}

func (f *fakeNotifier) Close(gameID, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, gameID)
}

func (f *fakeNotifier) closedGames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.closed...)
}

func (f *fakeNotifier) Broadcast(gameID string, message domain.ServerMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messages == nil {
		f.messages = make(map[string][]domain.ServerMessage)
	}
	f.messages[gameID] = append(f.messages[gameID], message)
}

func newManager(repo GameRepository) *SessionManager {
	return NewSessionManager(repo, bot.NewEngine(2, nil))
}

func TestCreateSessionAsYellow(t *testing.T) {
	sm := newManager(nil)
	session, err := sm.CreateSession(context.Background(), bot.DifficultyHard, domain.Yellow)
	require.NoError(t, err)

	state := session.State()
	assert.Equal(t, domain.StatusActive, state.Status)
	assert.Equal(t, "yellow", state.CurrentTurn)
	assert.Equal(t, "yellow", state.YourColor)
	assert.Equal(t, "Charles", state.Opponent)
	assert.Empty(t, state.Moves)
	assert.Len(t, state.ValidMoves, domain.Width)

	found, ok := sm.GetSession(session.GameID)
	require.True(t, ok)
	assert.Same(t, session, found)
	assert.Len(t, sm.ActiveGames(), 1)
}

func TestCreateSessionAsRedLetsBotOpen(t *testing.T) {
	sm := newManager(nil)
	session, err := sm.CreateSession(context.Background(), bot.DifficultyMedium, domain.Red)
	require.NoError(t, err)

	state := session.State()
	require.Len(t, state.Moves, 1)
	assert.Equal(t, domain.Yellow, state.Moves[0].Color)
	assert.Equal(t, "red", state.CurrentTurn)
}

func TestCreateSessionValidates(t *testing.T) {
	sm := newManager(nil)
	_, err := sm.CreateSession(context.Background(), "impossible", domain.Yellow)
	assert.Error(t, err)
	_, err = sm.CreateSession(context.Background(), bot.DifficultyEasy, domain.Empty)
	assert.ErrorIs(t, err, domain.ErrUnknownColor)
}

func TestHandleMovePlaysBotReply(t *testing.T) {
	sm := newManager(nil)
	notifier := &fakeNotifier{}
	sm.SetNotifier(notifier)

	session, err := sm.CreateSession(context.Background(), bot.DifficultyHard, domain.Yellow)
	require.NoError(t, err)

	state, err := sm.HandleMove(context.Background(), session.GameID, 3)
	require.NoError(t, err)
	require.Len(t, state.Moves, 2)
	assert.Equal(t, 3, state.Moves[0].Column)
	assert.Equal(t, domain.Red, state.Moves[1].Color)
	assert.Equal(t, "yellow", state.CurrentTurn)
	require.NotNil(t, state.LastMove)
	assert.Equal(t, state.Moves[1], *state.LastMove)

	notifier.mu.Lock()
	assert.Len(t, notifier.messages[session.GameID], 1)
	notifier.mu.Unlock()
}

func TestHandleMoveErrors(t *testing.T) {
	sm := newManager(nil)
	ctx := context.Background()

	_, err := sm.HandleMove(ctx, "missing", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := sm.CreateSession(ctx, bot.DifficultyEasy, domain.Yellow)
	require.NoError(t, err)

	_, err = sm.HandleMove(ctx, session.GameID, domain.Width)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
	assert.Empty(t, session.State().Moves)
}

func TestPlayedOutGameIsSaved(t *testing.T) {
	repo := &fakeRepo{}
	sm := newManager(repo)
	ctx := context.Background()

	session, err := sm.CreateSession(ctx, bot.DifficultyMedium, domain.Yellow)
	require.NoError(t, err)

	for i := 0; i < domain.Width*domain.Height; i++ {
		state := session.State()
		if state.Status != domain.StatusActive {
			break
		}
		_, err := sm.HandleMove(ctx, session.GameID, state.ValidMoves[0])
		require.NoError(t, err)
	}

	state := session.State()
	require.NotEqual(t, domain.StatusActive, state.Status)
	assert.Empty(t, state.ValidMoves)

	_, err = sm.HandleMove(ctx, session.GameID, 0)
	assert.ErrorIs(t, err, domain.ErrGameOver)

	sm.WaitForSaves()
	records := repo.saved()
	require.Len(t, records, 1)
	assert.Equal(t, session.GameID, records[0].GameID)
	assert.Equal(t, len(state.Moves), records[0].TotalMoves)
	assert.Contains(t, []string{domain.ReasonConnectFour, domain.ReasonDraw}, records[0].Reason)
	assert.Empty(t, sm.ActiveGames())
}

func TestCleanupStale(t *testing.T) {
	repo := &fakeRepo{}
	sm := newManager(repo)
	notifier := &fakeNotifier{}
	sm.SetNotifier(notifier)
	ctx := context.Background()

	idle, err := sm.CreateSession(ctx, bot.DifficultyEasy, domain.Yellow)
	require.NoError(t, err)
	_, err = sm.HandleMove(ctx, idle.GameID, 3)
	require.NoError(t, err)

	fresh, err := sm.CreateSession(ctx, bot.DifficultyEasy, domain.Yellow)
	require.NoError(t, err)

	idle.mu.Lock()
	idle.LastActivity = time.Now().Add(-2 * time.Hour)
	idle.mu.Unlock()

	assert.Equal(t, 1, sm.CleanupStale(time.Hour))
	_, ok := sm.GetSession(idle.GameID)
	assert.False(t, ok)
	_, ok = sm.GetSession(fresh.GameID)
	assert.True(t, ok)

	sm.WaitForSaves()
	records := repo.saved()
	require.Len(t, records, 1)
	assert.Equal(t, domain.ReasonAbandoned, records[0].Reason)
	assert.Empty(t, records[0].Winner)
	assert.Equal(t, []string{idle.GameID}, notifier.closedGames())
}

func TestRemoveSession(t *testing.T) {
	sm := newManager(nil)
	notifier := &fakeNotifier{}
	sm.SetNotifier(notifier)
	session, err := sm.CreateSession(context.Background(), bot.DifficultyEasy, domain.Yellow)
	require.NoError(t, err)

	require.NoError(t, sm.RemoveSession(session.GameID))
	assert.ErrorIs(t, sm.RemoveSession(session.GameID), ErrSessionNotFound)
	assert.Equal(t, []string{session.GameID}, notifier.closedGames())
}

func TestHandleMoveRollsBackWhenBotFails(t *testing.T) {
	engine := bot.NewEngine(2, nil)
	engine.Parallel = true
	sm := NewSessionManager(nil, engine)
	notifier := &fakeNotifier{}
	sm.SetNotifier(notifier)

	session, err := sm.CreateSession(context.Background(), bot.DifficultyMedium, domain.Yellow)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sm.HandleMove(cancelled, session.GameID, 3)
	require.ErrorIs(t, err, context.Canceled)

	state := session.State()
	assert.Empty(t, state.Moves)
	assert.Equal(t, "yellow", state.CurrentTurn)
	assert.Equal(t, domain.StatusActive, state.Status)
	assert.True(t, session.Game.Board.IsEmpty())

	notifier.mu.Lock()
	assert.Empty(t, notifier.messages[session.GameID])
	notifier.mu.Unlock()

	state, err = sm.HandleMove(context.Background(), session.GameID, 2)
	require.NoError(t, err)
	require.Len(t, state.Moves, 2)
	assert.Equal(t, 2, state.Moves[0].Column)
	assert.Equal(t, "yellow", state.CurrentTurn)
}
