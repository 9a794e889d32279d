package domain

import "strings"

// Cell is the content of one grid position. It doubles as the color of a player.
type Cell uint8

const (
	Empty Cell = iota
	Yellow
	Red
)

// Flip swaps the two colors and leaves Empty alone.
func (c Cell) Flip() Cell {
	switch c {
	case Yellow:
		return Red
	case Red:
		return Yellow
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Yellow:
		return "Y"
	case Red:
		return "R"
	default:
		return "_"
	}
}

func (c Cell) Name() string {
	switch c {
	case Yellow:
		return "Yellow"
	case Red:
		return "Red"
	default:
		return "Empty"
	}
}

// sign is +1 for Yellow and -1 for Red; scores are always from Yellow's side.
func (c Cell) sign() int {
	switch c {
	case Yellow:
		return 1
	case Red:
		return -1
	default:
		return 0
	}
}

func ParseCell(r rune) Cell {
	switch r {
	case 'Y', 'y':
		return Yellow
	case 'R', 'r':
		return Red
	default:
		return Empty
	}
}

func ParseColor(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yellow", "y":
		return Yellow, nil
	case "red", "r":
		return Red, nil
	default:
		return Empty, ErrUnknownColor
	}
}
