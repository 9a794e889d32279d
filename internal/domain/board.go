package domain

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Board is the playing grid. Row 0 is the bottom row.
//
// Board is a plain array so copies are independent, == compares every cell and a
// Board can be used directly as a map key. Transpositions therefore compare equal.
type Board [Height][Width]Cell

func NewBoard() Board {
	return Board{}
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

func (b *Board) At(row, col int) Cell {
	if !inBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

// DropRow returns the row a token dropped into column would land in, or -1.
func (b *Board) DropRow(column int) int {
	if column < 0 || column >= Width {
		return -1
	}
	for row := 0; row < Height; row++ {
		if b[row][column] == Empty {
			return row
		}
	}
	return -1
}

// ApplyMove drops a token of color into column.
func (b *Board) ApplyMove(column int, color Cell) error {
	if color == Empty {
		return &InvalidMoveError{Column: column}
	}
	row := b.DropRow(column)
	if row < 0 {
		return &InvalidMoveError{Column: column}
	}
	b[row][column] = color
	return nil
}

// RemoveMove takes back the topmost token of column, which must be of color.
func (b *Board) RemoveMove(column int, color Cell) error {
	if column < 0 || column >= Width || color == Empty {
		return &InvalidMoveError{Column: column}
	}
	for row := Height - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			continue
		}
		if b[row][column] != color {
			return &InvalidMoveError{Column: column}
		}
		b[row][column] = Empty
		return nil
	}
	return &InvalidMoveError{Column: column}
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Width {
		return false
	}
	return b[Height-1][column] == Empty
}

// ListValidMoves returns the open columns in ascending order.
func (b *Board) ListValidMoves() []int {
	moves := make([]int, 0, Width)
	for col := 0; col < Width; col++ {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsEmpty() bool {
	for col := 0; col < Width; col++ {
		if b[0][col] != Empty {
			return false
		}
	}
	return true
}

func (b *Board) IsFull() bool {
	for col := 0; col < Width; col++ {
		if b[Height-1][col] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) TokenCount() int {
	n := 0
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if b[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// SideToMove derives whose turn it is from the token count. Yellow always opens,
// so every move order reaching the same layout agrees on the side to move.
func (b *Board) SideToMove() Cell {
	if b.TokenCount()%2 == 0 {
		return Yellow
	}
	return Red
}

// Swapped returns a copy with every token's color flipped.
func (b Board) Swapped() Board {
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			b[row][col] = b[row][col].Flip()
		}
	}
	return b
}

// Key is a canonical text form of the layout, bottom row first.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Height * Width)
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			sb.WriteString(b[row][col].String())
		}
	}
	return sb.String()
}

func (b *Board) Hash() uint64 {
	return xxhash.Sum64String(b.Key())
}

// Grid converts the board for JSON and database storage: rows top to bottom,
// 0 for empty, 1 for yellow, 2 for red.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Height)
	for i := range grid {
		row := Height - 1 - i
		grid[i] = make([]int, Width)
		for col := 0; col < Width; col++ {
			grid[i][col] = int(b[row][col])
		}
	}
	return grid
}
