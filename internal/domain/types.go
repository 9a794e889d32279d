package domain

import "fmt"

const (
	Height = 6
	Width  = 7
	ToWin  = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

type ResultKind int

const (
	ResultWin ResultKind = iota
	ResultDraw
)

// GameResult is produced by Board.CheckForWin for terminal positions only.
type GameResult struct {
	Kind   ResultKind
	Winner Cell
}

func Win(color Cell) *GameResult {
	return &GameResult{Kind: ResultWin, Winner: color}
}

func Draw() *GameResult {
	return &GameResult{Kind: ResultDraw, Winner: Empty}
}

func (r GameResult) String() string {
	if r.Kind == ResultDraw {
		return "draw"
	}
	return r.Winner.Name() + " wins"
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove    Error = "invalid move"
	ErrNotYourTurn    Error = "not your turn"
	ErrGameOver       Error = "game is already over"
	ErrNothingToUndo  Error = "no moves to undo"
	ErrMalformedBoard Error = "malformed board"
	ErrUnknownColor   Error = "unknown color"
)

// InvalidMoveError reports the column of a rejected drop or removal.
type InvalidMoveError struct {
	Column int
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("column %d is an invalid move", e.Column)
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
