package domain

// GameState is the view of a live game sent to clients.
type GameState struct {
	GameID      string     `json:"gameId"`
	Board       [][]int    `json:"board"`
	Status      GameStatus `json:"status"`
	CurrentTurn string     `json:"currentTurn"`
	YourColor   string     `json:"yourColor"`
	Winner      string     `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Difficulty  string     `json:"difficulty"`
	Opponent    string     `json:"opponent"`
	ValidMoves  []int      `json:"validMoves"`
	Moves       []Move     `json:"moves"`
	LastMove    *Move      `json:"lastMove,omitempty"`
	Eval        int        `json:"eval"`
}

type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

type ServerMessage struct {
	Type    string     `json:"type"`
	Message string     `json:"message,omitempty"`
	State   *GameState `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
