package bot

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
)

// calculateEasyMove wins when it can, blocks when it must and otherwise plays a
// random open column.
func (e *Engine) calculateEasyMove(board domain.Board, color domain.Cell) int {
	validColumns := board.ListValidMoves()
	if len(validColumns) == 0 {
		return -1
	}

	if col := findWinningMove(board, color); col >= 0 {
		return col
	}

	if col := findWinningMove(board, color.Flip()); col >= 0 {
		return col
	}

	return validColumns[e.intn(len(validColumns))]
}

// findWinningMove returns the lowest column where color completes a line, or -1.
func findWinningMove(board domain.Board, color domain.Cell) int {
	for _, col := range board.ListValidMoves() {
		testBoard := board
		row := testBoard.DropRow(col)
		if err := testBoard.ApplyMove(col, color); err != nil {
			continue
		}
		if testBoard.IsWinningMove(row, col) {
			return col
		}
	}
	return -1
}
