package domain

import (
	"fmt"
	"strings"
)

// String renders the board for humans, top row first, with a column footer.
func (b Board) String() string {
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%2d [", row)
		for col := 0; col < Width; col++ {
			sb.WriteString(" ")
			sb.WriteString(b[row][col].String())
		}
		sb.WriteString(" ]\n")
	}

	sb.WriteString(" x  ")
	for col := 0; col < Width; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString("\n")
	return sb.String()
}

// ParseBoard builds a board from rows written top to bottom, the way String
// prints them: "Y", "R" and "_" per cell.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != Height {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, Height, len(rows))
	}

	for i, line := range rows {
		row := Height - 1 - i
		cells := []rune(line)
		if len(cells) != Width {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, row, len(cells))
		}
		for col, r := range cells {
			if r != '_' && r != '.' && ParseCell(r) == Empty {
				return b, fmt.Errorf("%w: unexpected %q at row %d", ErrMalformedBoard, r, row)
			}
			b[row][col] = ParseCell(r)
		}
	}

	// no floating tokens
	for col := 0; col < Width; col++ {
		for row := 1; row < Height; row++ {
			if b[row][col] != Empty && b[row-1][col] == Empty {
				return b, fmt.Errorf("%w: floating token in column %d", ErrMalformedBoard, col)
			}
		}
	}

	return b, nil
}
