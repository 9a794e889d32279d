package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const maxAnalyzeDepth = 6

// AnalyzeHandler evaluates arbitrary positions without starting a game.
type AnalyzeHandler struct {
	DefaultDepth int
}

func NewAnalyzeHandler(defaultDepth int) *AnalyzeHandler {
	return &AnalyzeHandler{DefaultDepth: defaultDepth}
}

type analyzeRequest struct {
	// Rows run top to bottom, as ParseBoard reads them.
	Rows   []string `json:"rows" binding:"required"`
	ToMove string   `json:"toMove"`
	Depth  int      `json:"depth"`
}

type analyzeResponse struct {
	Eval       int    `json:"eval"`
	BestMove   int    `json:"bestMove"`
	Value      int    `json:"value"`
	Depth      int    `json:"depth"`
	Nodes      int    `json:"nodes"`
	ValidMoves []int  `json:"validMoves"`
	Result     string `json:"result,omitempty"`
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "rows are required"})
		return
	}

	board, err := domain.ParseBoard(req.Rows)
	if err != nil {
		abortWithError(c, err)
		return
	}

	toMove := board.SideToMove()
	if req.ToMove != "" {
		if toMove, err = domain.ParseColor(req.ToMove); err != nil {
			abortWithError(c, err)
			return
		}
	}

	depth := h.depthFor(req.Depth)
	resp := analyzeResponse{
		Eval:       board.Eval(),
		BestMove:   -1,
		Depth:      depth,
		ValidMoves: board.ListValidMoves(),
	}

	if result := board.CheckForWin(); result != nil {
		resp.Result = resultName(result)
		resp.ValidMoves = []int{}
		c.JSON(http.StatusOK, resp)
		return
	}

	decision, err := bot.Search(board, toMove, depth)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp.BestMove = decision.Column
	resp.Value = decision.Value
	resp.Nodes = decision.Nodes
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyzeHandler) depthFor(requested int) int {
	depth := requested
	if depth <= 0 {
		depth = h.DefaultDepth
	}
	if depth <= 0 {
		depth = bot.DefaultSearchDepth
	}
	if depth > maxAnalyzeDepth {
		depth = maxAnalyzeDepth
	}
	return depth
}

func resultName(r *domain.GameResult) string {
	if r.Kind == domain.ResultDraw {
		return "draw"
	}
	return strings.ToLower(r.Winner.Name())
}
