package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Human reads one column number per line.
type Human struct {
	scanner *bufio.Scanner
}

func NewHuman(in io.Reader) *Human {
	return &Human{scanner: bufio.NewScanner(in)}
}

func (h *Human) IsHuman() bool {
	return true
}

func (h *Human) NextMove(ctx context.Context, _ domain.Board, _ domain.Cell) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if !h.scanner.Scan() {
		if err := h.scanner.Err(); err != nil {
			return -1, err
		}
		return -1, io.EOF
	}

	line := strings.TrimSpace(h.scanner.Text())
	column, err := strconv.Atoi(line)
	if err != nil || column < 0 {
		return -1, fmt.Errorf("%w: %q", ErrBadInput, line)
	}
	return column, nil
}
