package player

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanParsesLines(t *testing.T) {
	h := NewHuman(strings.NewReader("3\n  5 \nabc\n-1\n"))
	ctx := context.Background()
	board := domain.NewBoard()
	assert.True(t, h.IsHuman())

	col, err := h.NextMove(ctx, board, domain.Yellow)
	require.NoError(t, err)
	assert.Equal(t, 3, col)

	col, err = h.NextMove(ctx, board, domain.Yellow)
	require.NoError(t, err)
	assert.Equal(t, 5, col)

	_, err = h.NextMove(ctx, board, domain.Yellow)
	assert.ErrorIs(t, err, ErrBadInput)
	assert.NotErrorIs(t, err, domain.ErrInvalidMove)

	_, err = h.NextMove(ctx, board, domain.Yellow)
	assert.ErrorIs(t, err, ErrBadInput)

	_, err = h.NextMove(ctx, board, domain.Yellow)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRandomPicksOpenColumns(t *testing.T) {
	r := NewRandom(7)
	assert.False(t, r.IsHuman())

	board := domain.NewBoard()
	for i := 0; i < domain.Height; i++ {
		require.NoError(t, board.ApplyMove(2, domain.Cell(1+i%2)))
	}

	for i := 0; i < 100; i++ {
		col, err := r.NextMove(context.Background(), board, domain.Yellow)
		require.NoError(t, err)
		assert.NotEqual(t, 2, col)
		assert.True(t, board.IsValidMove(col))
	}
}

func TestNewSelectsKinds(t *testing.T) {
	engine := bot.NewEngine(2, nil)

	p, err := New(KindBot, Options{Engine: engine, Difficulty: bot.DifficultyMedium})
	require.NoError(t, err)
	assert.False(t, p.IsHuman())
	col, err := p.NextMove(context.Background(), domain.NewBoard(), domain.Yellow)
	require.NoError(t, err)
	assert.True(t, col >= 0 && col < domain.Width)

	p, err = New(KindRandom, Options{Seed: 1})
	require.NoError(t, err)
	assert.IsType(t, &Random{}, p)

	p, err = New(KindHuman, Options{Human: NewHuman(strings.NewReader(""))})
	require.NoError(t, err)
	assert.True(t, p.IsHuman())

	_, err = New(KindHuman, Options{})
	assert.Error(t, err)
	_, err = New(KindBot, Options{})
	assert.Error(t, err)
	_, err = New(KindBot, Options{Engine: engine, Difficulty: "impossible"})
	assert.Error(t, err)
	_, err = New("alien", Options{})
	assert.Error(t, err)
}
