package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
)

type Handlers struct {
	Game      *GameHandler
	History   *HistoryHandler
	Analyze   *AnalyzeHandler
	WebSocket gin.HandlerFunc
}

func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/games", h.Game.CreateGame)
		api.GET("/games", h.Game.GetLiveGames)
		api.GET("/games/:id", h.Game.GetGame)
		api.POST("/games/:id/moves", middleware.GameAuth(), h.Game.MakeMove)

		api.GET("/history", h.History.GetHistory)
		api.GET("/history/:id", h.History.GetGameDetails)

		api.POST("/analyze", h.Analyze.Analyze)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if h.WebSocket != nil {
		router.GET("/ws", h.WebSocket)
	}

	return router
}
