package player

import (
	"context"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

// Search asks the bot engine for a move.
type Search struct {
	Engine     *bot.Engine
	Difficulty string
}

func (s *Search) IsHuman() bool {
	return false
}

func (s *Search) NextMove(ctx context.Context, board domain.Board, color domain.Cell) (int, error) {
	return s.Engine.CalculateBestMove(ctx, board, color, s.Difficulty)
}
