package domain

import "time"

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonAbandoned   = "abandoned"
)

// GameRecord is a finished game as it is stored and served from history.
type GameRecord struct {
	GameID          string    `json:"gameId"`
	HumanColor      string    `json:"humanColor"`
	Difficulty      string    `json:"difficulty"`
	Winner          string    `json:"winner,omitempty"`
	Reason          string    `json:"reason"`
	TotalMoves      int       `json:"totalMoves"`
	Moves           []int     `json:"moves"`
	BoardState      [][]int   `json:"boardState"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	FinishedAt      time.Time `json:"finishedAt"`
}
