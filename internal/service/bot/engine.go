package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	mediumDepth = 2
)

const ErrNoValidMoves domain.Error = "no valid moves"

var BotNames = map[string]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

func IsValidDifficulty(difficulty string) bool {
	_, ok := BotNames[difficulty]
	return ok
}

// MoveCache remembers decisions of the deterministic difficulties.
type MoveCache interface {
	GetMove(ctx context.Context, key string) (int, bool, error)
	SetMove(ctx context.Context, key string, column int) error
}

type Engine struct {
	// Depth is the search depth used for "hard".
	Depth    int
	Parallel bool
	Cache    MoveCache

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(depth int, cache MoveCache) *Engine {
	if depth <= 0 {
		depth = DefaultSearchDepth
	}
	return &Engine{
		Depth: depth,
		Cache: cache,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand swaps the random source, for reproducible easy bots.
func (e *Engine) WithRand(rng *rand.Rand) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng = rng
	return e
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// CalculateBestMove selects a move for color based on difficulty.
func (e *Engine) CalculateBestMove(ctx context.Context, board domain.Board, color domain.Cell, difficulty string) (int, error) {
	if len(board.ListValidMoves()) == 0 {
		return -1, ErrNoValidMoves
	}

	switch difficulty {
	case DifficultyEasy:
		return e.calculateEasyMove(board, color), nil
	case DifficultyMedium:
		return e.searchCached(ctx, board, color, difficulty, mediumDepth)
	case DifficultyHard:
		return e.searchCached(ctx, board, color, difficulty, e.Depth)
	default:
		return e.searchCached(ctx, board, color, DifficultyMedium, mediumDepth)
	}
}

func cacheKey(board domain.Board, color domain.Cell, difficulty string, depth int) string {
	return fmt.Sprintf("bot:%s:%d:%s:%s", difficulty, depth, color, board.Key())
}

func (e *Engine) searchCached(ctx context.Context, board domain.Board, color domain.Cell, difficulty string, depth int) (int, error) {
	key := cacheKey(board, color, difficulty, depth)
	if e.Cache != nil {
		col, ok, err := e.Cache.GetMove(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("component", "bot").Msg("move cache lookup failed")
		} else if ok && board.IsValidMove(col) {
			return col, nil
		}
	}

	var decision Decision
	var err error
	start := time.Now()
	if e.Parallel {
		decision, err = SearchParallel(ctx, board, color, depth)
	} else {
		decision, err = Search(board, color, depth)
	}
	if err != nil {
		return -1, err
	}

	log.Debug().
		Str("component", "bot").
		Str("difficulty", difficulty).
		Int("depth", depth).
		Int("column", decision.Column).
		Int("value", decision.Value).
		Int("nodes", decision.Nodes).
		Dur("took", time.Since(start)).
		Msg("search finished")

	if e.Cache != nil {
		if err := e.Cache.SetMove(ctx, key, decision.Column); err != nil {
			log.Warn().Err(err).Str("component", "bot").Msg("move cache store failed")
		}
	}
	return decision.Column, nil
}
