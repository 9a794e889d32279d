package domain

// Move is one drop made during a game.
type Move struct {
	Column int  `json:"column"`
	Row    int  `json:"row"`
	Color  Cell `json:"color"`
}

// Game owns the turn order around a Board. The Board itself never stores whose
// turn it is or whether the game is over.
type Game struct {
	Board         Board
	CurrentPlayer Cell
	Status        GameStatus
	Winner        Cell
	Moves         []Move
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Yellow,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) MakeMove(player Cell, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}

	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row := g.Board.DropRow(column)
	if err := g.Board.ApplyMove(column, player); err != nil {
		return -1, err
	}
	g.Moves = append(g.Moves, Move{Column: column, Row: row, Color: player})

	// only lines through the new token can be new
	if g.Board.IsWinningMove(row, column) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Flip()
	return row, nil
}

// Undo takes back the last move and reopens the game.
func (g *Game) Undo() error {
	if len(g.Moves) == 0 {
		return ErrNothingToUndo
	}
	last := g.Moves[len(g.Moves)-1]
	if err := g.Board.RemoveMove(last.Column, last.Color); err != nil {
		return err
	}
	g.Moves = g.Moves[:len(g.Moves)-1]
	g.CurrentPlayer = last.Color
	g.Status = StatusActive
	g.Winner = Empty
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Result mirrors Status as a GameResult, nil while the game is active.
func (g *Game) Result() *GameResult {
	switch g.Status {
	case StatusWon:
		return Win(g.Winner)
	case StatusDraw:
		return Draw()
	default:
		return nil
	}
}
