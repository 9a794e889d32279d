package player

import (
	"context"
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Random plays a uniformly random open column.
type Random struct {
	rng *rand.Rand
}

// NewRandom seeds from the clock when seed is 0.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) IsHuman() bool {
	return false
}

func (r *Random) NextMove(_ context.Context, board domain.Board, _ domain.Cell) (int, error) {
	moves := board.ListValidMoves()
	if len(moves) == 0 {
		return -1, domain.ErrInvalidMove
	}
	return moves[r.rng.Intn(len(moves))], nil
}
