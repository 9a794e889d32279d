package player

import (
	"context"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const (
	KindHuman  = "human"
	KindRandom = "random"
	KindBot    = "bot"
)

// ErrBadInput is returned when a human's line is not a column number. It is
// separate from domain.ErrInvalidMove, which is about the board.
const ErrBadInput domain.Error = "input is not a column number"

// Player produces the next column to play. The control loop asks the player of
// the current color and validates the answer against the board.
type Player interface {
	IsHuman() bool
	NextMove(ctx context.Context, board domain.Board, color domain.Cell) (int, error)
}

// Options carries what the concrete players need.
type Options struct {
	Human      *Human
	Engine     *bot.Engine
	Difficulty string
	Seed       int64
}

// New picks a Player by kind at game setup time.
func New(kind string, opts Options) (Player, error) {
	switch kind {
	case KindHuman:
		if opts.Human == nil {
			return nil, fmt.Errorf("human player needs an input source")
		}
		return opts.Human, nil
	case KindRandom:
		return NewRandom(opts.Seed), nil
	case KindBot:
		if opts.Engine == nil {
			return nil, fmt.Errorf("bot player needs an engine")
		}
		difficulty := opts.Difficulty
		if difficulty == "" {
			difficulty = bot.DifficultyHard
		}
		if !bot.IsValidDifficulty(difficulty) {
			return nil, fmt.Errorf("unknown difficulty %q", difficulty)
		}
		return &Search{Engine: opts.Engine, Difficulty: difficulty}, nil
	default:
		return nil, fmt.Errorf("unknown player kind %q", kind)
	}
}
