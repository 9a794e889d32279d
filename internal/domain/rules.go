package domain

// the four axes a line can run along, pointing north or east. Win checks walk
// them both ways, evaluation only forwards.
var axes = [4][2]int{
	{1, 0},  // vertical
	{0, 1},  // horizontal
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// countInDirection counts up to ToWin-1 consecutive cells of color starting one
// step away from (row, col).
func (b *Board) countInDirection(row, col, dRow, dCol int, color Cell) int {
	count := 0
	r, c := row+dRow, col+dCol
	for count < ToWin-1 && inBounds(r, c) && b[r][c] == color {
		count++
		r += dRow
		c += dCol
	}
	return count
}

// CheckForWin scans the board in row-major order and reports the first complete
// line it meets. A full board without a line is a draw; nil means play goes on.
func (b *Board) CheckForWin() *GameResult {
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			color := b[row][col]
			if color == Empty {
				continue
			}
			if b.completesLine(row, col, color) {
				return Win(color)
			}
		}
	}

	if b.IsFull() {
		return Draw()
	}
	return nil
}

func (b *Board) completesLine(row, col int, color Cell) bool {
	for _, axis := range axes {
		run := 1 +
			b.countInDirection(row, col, axis[0], axis[1], color) +
			b.countInDirection(row, col, -axis[0], -axis[1], color)
		if run >= ToWin {
			return true
		}
	}
	return false
}

// IsWinningMove reports whether the token at (row, col) is part of a line.
func (b *Board) IsWinningMove(row, col int) bool {
	if !inBounds(row, col) || b[row][col] == Empty {
		return false
	}
	return b.completesLine(row, col, b[row][col])
}

// Eval sums EvalSquare over the whole board. Positive favours Yellow.
func (b *Board) Eval() int {
	score := 0
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			score += b.EvalSquare(row, col)
		}
	}
	return score
}

// EvalSquare scores the token at (row, col) looking north, east, north-east and
// north-west. A direction counts only when the four-cell window starting at the
// token fits on the board and holds no opposing token; it then adds the number of
// same-colored tokens directly following. The token itself adds 1.
func (b *Board) EvalSquare(row, col int) int {
	color := b.At(row, col)
	if color == Empty {
		return 0
	}
	opponent := color.Flip()

	score := 1
	for _, axis := range axes {
		dRow, dCol := axis[0], axis[1]

		open := true
		for step := 1; step < ToWin; step++ {
			r, c := row+dRow*step, col+dCol*step
			if !inBounds(r, c) || b[r][c] == opponent {
				open = false
				break
			}
		}
		if !open {
			continue
		}
		score += b.countInDirection(row, col, dRow, dCol, color)
	}

	return score * color.sign()
}
