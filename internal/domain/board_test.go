package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) Board {
	t.Helper()
	b, err := ParseBoard(rows)
	require.NoError(t, err)
	return b
}

func TestFlip(t *testing.T) {
	assert.Equal(t, Red, Yellow.Flip())
	assert.Equal(t, Yellow, Red.Flip())
	assert.Equal(t, Empty, Empty.Flip())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Red ")
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = ParseColor("y")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)

	_, err = ParseColor("green")
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestApplyMoveFillsColumn(t *testing.T) {
	for col := 0; col < Width; col++ {
		for _, color := range []Cell{Yellow, Red} {
			b := NewBoard()
			for i := 0; i < Height; i++ {
				require.NoError(t, b.ApplyMove(col, color), "column %d drop %d", col, i)
				assert.Equal(t, color, b.At(i, col))
			}

			err := b.ApplyMove(col, color)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMove))

			var moveErr *InvalidMoveError
			require.ErrorAs(t, err, &moveErr)
			assert.Equal(t, col, moveErr.Column)
		}
	}
}

func TestApplyMoveRejectsBadColumns(t *testing.T) {
	b := NewBoard()
	assert.ErrorIs(t, b.ApplyMove(-1, Yellow), ErrInvalidMove)
	assert.ErrorIs(t, b.ApplyMove(Width, Yellow), ErrInvalidMove)
	assert.ErrorIs(t, b.ApplyMove(0, Empty), ErrInvalidMove)
	assert.True(t, b.IsEmpty())
}

func TestApplyMoveMatchesParsedBoard(t *testing.T) {
	expected := mustParse(t,
		"_______",
		"_______",
		"R______",
		"R______",
		"R______",
		"R_YYYY_",
	)

	b := NewBoard()
	for i := 0; i < 4; i++ {
		require.NoError(t, b.ApplyMove(0, Red))
	}
	for col := 2; col <= 5; col++ {
		require.NoError(t, b.ApplyMove(col, Yellow))
	}

	assert.Equal(t, expected, b)
}

func TestApplyRemoveRoundTrip(t *testing.T) {
	for col := 0; col < Width; col++ {
		b := NewBoard()
		color := Yellow
		for height := 0; height < Height; height++ {
			before := b
			require.NoError(t, b.ApplyMove(col, color))
			require.NoError(t, b.RemoveMove(col, color))
			assert.Equal(t, before, b, "column %d height %d", col, height)

			require.NoError(t, b.ApplyMove(col, color))
			color = color.Flip()
		}
	}
}

func TestRemoveMoveBelowFullColumn(t *testing.T) {
	start := mustParse(t,
		"_______",
		"Y______",
		"Y______",
		"Y______",
		"Y______",
		"Y______",
	)
	b := start
	require.NoError(t, b.ApplyMove(0, Yellow))
	require.NoError(t, b.RemoveMove(0, Yellow))
	assert.Equal(t, start, b)
}

func TestRemoveMoveRejectsMismatch(t *testing.T) {
	b := NewBoard()
	assert.ErrorIs(t, b.RemoveMove(0, Yellow), ErrInvalidMove)

	require.NoError(t, b.ApplyMove(0, Yellow))
	require.NoError(t, b.ApplyMove(0, Red))
	assert.ErrorIs(t, b.RemoveMove(0, Yellow), ErrInvalidMove)
	assert.ErrorIs(t, b.RemoveMove(Width, Red), ErrInvalidMove)

	require.NoError(t, b.RemoveMove(0, Red))
	require.NoError(t, b.RemoveMove(0, Yellow))
	assert.True(t, b.IsEmpty())
}

func TestListValidMoves(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.ListValidMoves())

	for i := 0; i < Height; i++ {
		require.NoError(t, b.ApplyMove(3, Yellow))
	}
	assert.Equal(t, []int{0, 1, 2, 4, 5, 6}, b.ListValidMoves())
	assert.False(t, b.IsValidMove(3))
	assert.False(t, b.IsValidMove(-1))
	assert.False(t, b.IsValidMove(Width))
}

func TestColumnStaysPlayableAfterFourInARow(t *testing.T) {
	b := NewBoard()
	for i := 0; i < 4; i++ {
		require.NoError(t, b.ApplyMove(0, Yellow))
	}
	require.Equal(t, Win(Yellow), b.CheckForWin())
	assert.Contains(t, b.ListValidMoves(), 0)

	require.NoError(t, b.ApplyMove(0, Yellow))
	assert.Contains(t, b.ListValidMoves(), 0)
	require.NoError(t, b.ApplyMove(0, Yellow))
	assert.NotContains(t, b.ListValidMoves(), 0)
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	b := mustParse(t,
		"RRYYRRY",
		"YYRRYYR",
		"RRYYRRY",
		"YYRRYYR",
		"RRYYRRY",
		"YYRRYYR",
	)
	assert.True(t, b.IsFull())
	assert.False(t, b.IsEmpty())
	assert.Empty(t, b.ListValidMoves())
	assert.Equal(t, Draw(), b.CheckForWin())
}

func TestTranspositionsCompareAndHashEqual(t *testing.T) {
	a := NewBoard()
	require.NoError(t, a.ApplyMove(0, Yellow))
	require.NoError(t, a.ApplyMove(1, Red))
	require.NoError(t, a.ApplyMove(2, Yellow))

	b := NewBoard()
	require.NoError(t, b.ApplyMove(2, Yellow))
	require.NoError(t, b.ApplyMove(1, Red))
	require.NoError(t, b.ApplyMove(0, Yellow))

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Hash(), b.Hash())

	seen := map[Board]int{a: 1}
	assert.Equal(t, 1, seen[b])

	c := a
	require.NoError(t, c.ApplyMove(3, Red))
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestSideToMove(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, Yellow, b.SideToMove())
	require.NoError(t, b.ApplyMove(0, Yellow))
	assert.Equal(t, Red, b.SideToMove())
	assert.Equal(t, 1, b.TokenCount())
}

func TestGridIsTopDown(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.ApplyMove(6, Red))
	grid := b.Grid()
	require.Len(t, grid, Height)
	assert.Equal(t, 2, grid[Height-1][6])
	assert.Equal(t, 0, grid[0][6])
}
