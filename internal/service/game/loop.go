package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/player"
)

// maxRetries bounds how often a non-human player may answer with a bad column
// before the loop gives up on it.
const maxRetries = 100

// Loop alternates turns between two players on one board and prints the game.
type Loop struct {
	Yellow player.Player
	Red    player.Player
	Out    io.Writer

	game *domain.Game
}

func NewLoop(yellow, red player.Player, out io.Writer) *Loop {
	if out == nil {
		out = io.Discard
	}
	return &Loop{Yellow: yellow, Red: red, Out: out, game: domain.NewGame()}
}

// Game exposes the state being played, including the move list.
func (l *Loop) Game() *domain.Game {
	return l.game
}

func (l *Loop) current() player.Player {
	if l.game.CurrentPlayer == domain.Red {
		return l.Red
	}
	return l.Yellow
}

// Run plays until the board is decided and returns the result.
func (l *Loop) Run(ctx context.Context) (domain.GameResult, error) {
	fmt.Fprintf(l.Out, "Game Start: %s to move\n", l.game.CurrentPlayer.Name())

	for !l.game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return domain.GameResult{}, err
		}

		p := l.current()
		color := l.game.CurrentPlayer
		if p.IsHuman() {
			fmt.Fprintf(l.Out, "\n%s\n%s to move.\n%v\nInput the column you wish to play in:\n",
				l.game.Board, color.Name(), l.game.Board.ListValidMoves())
		}

		column, err := l.nextValidMove(ctx, p, color)
		if err != nil {
			return domain.GameResult{}, err
		}

		if _, err := l.game.MakeMove(color, column); err != nil {
			return domain.GameResult{}, err
		}
		if !p.IsHuman() {
			fmt.Fprintf(l.Out, "\n%s played %d.\n", color.Name(), column)
		}
	}

	result := l.game.Result()
	fmt.Fprintf(l.Out, "\n\n%s\n", l.game.Board)
	if result.Kind == domain.ResultWin {
		fmt.Fprintf(l.Out, "%s has won!!\n", result.Winner.Name())
	} else {
		fmt.Fprintln(l.Out, "Draw!")
	}
	return *result, nil
}

// nextValidMove asks p until it names an open column. Unparseable input and
// illegal columns are reported and asked again.
func (l *Loop) nextValidMove(ctx context.Context, p player.Player, color domain.Cell) (int, error) {
	for attempt := 0; ; attempt++ {
		if !p.IsHuman() && attempt >= maxRetries {
			return -1, fmt.Errorf("%s player kept choosing invalid columns", color.Name())
		}

		column, err := p.NextMove(ctx, l.game.Board, color)
		if errors.Is(err, player.ErrBadInput) {
			fmt.Fprintln(l.Out, err)
			continue
		}
		if err != nil {
			return -1, err
		}

		if !l.game.Board.IsValidMove(column) {
			fmt.Fprintln(l.Out, "Invalid move.")
			continue
		}
		return column, nil
	}
}
