package bot

import (
	"context"
	"sync"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SearchNode is one explored position.
type SearchNode struct {
	Board  domain.Board
	ToMove domain.Cell
	Depth  int
	// Move is the column that first produced this position from its parent, -1 at the root.
	Move   int
	Score  int
	Result *domain.GameResult
	// Children maps a column to the position it leads to.
	Children map[int]*SearchNode
}

func (n *SearchNode) IsTerminal() bool {
	return n.Result != nil
}

// SearchTree is a depth-bounded expansion of reachable positions, built fresh
// for every decision.
//
// Nodes live in a transposition table keyed by the board alone. Tokens alternate
// colors, so every path from the root to a layout has the same length and the
// same side to move; a transposition can share one node without ambiguity.
type SearchTree struct {
	MaxDepth int

	mu    sync.Mutex
	nodes map[domain.Board]*SearchNode
	root  *SearchNode
}

func NewSearchTree(maxDepth int) *SearchTree {
	return &SearchTree{
		MaxDepth: maxDepth,
		nodes:    make(map[domain.Board]*SearchNode),
	}
}

// Init resets the tree and inserts the root position.
func (t *SearchTree) Init(board domain.Board, sideToMove domain.Cell) *SearchNode {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.root = &SearchNode{
		Board:    board,
		ToMove:   sideToMove,
		Move:     -1,
		Score:    board.Eval(),
		Result:   board.CheckForWin(),
		Children: make(map[int]*SearchNode),
	}
	t.nodes = map[domain.Board]*SearchNode{board: t.root}
	return t.root
}

func (t *SearchTree) Root() *SearchNode {
	return t.root
}

// Len is the number of distinct positions in the table.
func (t *SearchTree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

func (t *SearchTree) Lookup(board domain.Board) (*SearchNode, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	node, ok := t.nodes[board]
	return node, ok
}

// Build expands the whole tree below the root.
func (t *SearchTree) Build() {
	if t.root == nil {
		return
	}
	t.expand(t.root)
}

// BuildParallel expands each subtree below the root in its own goroutine.
// Workers only share the transposition table.
func (t *SearchTree) BuildParallel(ctx context.Context) error {
	if t.root == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, child := range t.attachChildren(t.root) {
		child := child
		g.Go(func() error {
			return t.expandContext(ctx, child)
		})
	}
	return g.Wait()
}

func (t *SearchTree) expand(node *SearchNode) {
	for _, child := range t.attachChildren(node) {
		t.expand(child)
	}
}

func (t *SearchTree) expandContext(ctx context.Context, node *SearchNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, child := range t.attachChildren(node) {
		if err := t.expandContext(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

// attachChildren creates node's children and returns the ones that are new to
// the table and still need expanding. Shared transpositions are attached but
// left to whoever created them.
func (t *SearchTree) attachChildren(node *SearchNode) []*SearchNode {
	if node.Depth >= t.MaxDepth || node.IsTerminal() {
		return nil
	}

	var fresh []*SearchNode
	for _, col := range node.Board.ListValidMoves() {
		board := node.Board
		row := board.DropRow(col)
		if err := board.ApplyMove(col, node.ToMove); err != nil {
			continue
		}

		child := &SearchNode{
			Board:    board,
			ToMove:   node.ToMove.Flip(),
			Depth:    node.Depth + 1,
			Move:     col,
			Score:    board.Eval(),
			Children: make(map[int]*SearchNode),
		}
		if board.IsWinningMove(row, col) {
			child.Result = domain.Win(node.ToMove)
		} else if board.IsFull() {
			child.Result = domain.Draw()
		}

		shared, created := t.insert(child)
		node.Children[col] = shared
		if created {
			fresh = append(fresh, shared)
		}
	}
	return fresh
}

func (t *SearchTree) insert(node *SearchNode) (*SearchNode, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.nodes[node.Board]; ok {
		return existing, false
	}
	t.nodes[node.Board] = node
	return node, true
}
