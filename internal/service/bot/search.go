package bot

import (
	"context"
	"sort"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	DefaultSearchDepth = 4
	// WinScore dwarfs any Eval so a reachable win always beats position play.
	WinScore = 1_000_000
)

// Decision is the outcome of a search from one position.
type Decision struct {
	Column int `json:"column"`
	Value  int `json:"value"`
	Nodes  int `json:"nodes"`
}

// searchDepth keeps at least one ply below the root, otherwise there would be
// no move to choose from.
func searchDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	return depth
}

// Search builds a tree of the given depth below board and picks the move for
// color. Depths below 1 search one ply.
func Search(board domain.Board, color domain.Cell, depth int) (Decision, error) {
	tree := NewSearchTree(searchDepth(depth))
	tree.Init(board, color)
	tree.Build()
	return tree.Choose()
}

// SearchParallel is Search with the subtrees below the root built concurrently.
func SearchParallel(ctx context.Context, board domain.Board, color domain.Cell, depth int) (Decision, error) {
	tree := NewSearchTree(searchDepth(depth))
	tree.Init(board, color)
	if err := tree.BuildParallel(ctx); err != nil {
		return Decision{}, err
	}
	return tree.Choose()
}

// BestMove returns the column Search would play.
func BestMove(board domain.Board, color domain.Cell, depth int) (int, error) {
	decision, err := Search(board, color, depth)
	if err != nil {
		return -1, err
	}
	return decision.Column, nil
}

// Choose picks the root move whose minimax value is best for the side to move.
// Ties go to the lowest column.
func (t *SearchTree) Choose() (Decision, error) {
	root := t.root
	if root == nil || root.IsTerminal() || len(root.Children) == 0 {
		return Decision{Column: -1}, ErrNoValidMoves
	}

	values := make(map[*SearchNode]int, t.Len())
	maximizing := root.ToMove == domain.Yellow

	best := Decision{Column: -1, Nodes: t.Len()}
	for _, col := range sortedColumns(root) {
		value := minimax(root.Children[col], values)
		if best.Column < 0 ||
			(maximizing && value > best.Value) ||
			(!maximizing && value < best.Value) {
			best.Column = col
			best.Value = value
		}
	}
	return best, nil
}

// minimax scores node from Yellow's side. Leaves use the heuristic, decided
// positions use WinScore shrunk by depth so quicker wins and slower losses are
// preferred. values memoises shared transpositions.
func minimax(node *SearchNode, values map[*SearchNode]int) int {
	if v, ok := values[node]; ok {
		return v
	}

	var value int
	switch {
	case node.Result != nil && node.Result.Kind == domain.ResultWin:
		value = (WinScore - node.Depth) * sign(node.Result.Winner)
	case node.Result != nil:
		value = 0
	case len(node.Children) == 0:
		value = node.Score
	default:
		maximizing := node.ToMove == domain.Yellow
		first := true
		for _, child := range node.Children {
			v := minimax(child, values)
			if first || (maximizing && v > value) || (!maximizing && v < value) {
				value = v
				first = false
			}
		}
	}

	values[node] = value
	return value
}

func sortedColumns(node *SearchNode) []int {
	cols := make([]int, 0, len(node.Children))
	for col := range node.Children {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

func sign(color domain.Cell) int {
	if color == domain.Red {
		return -1
	}
	return 1
}
