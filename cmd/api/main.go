package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-engine/internal/transport/http"
	"github.com/iamasit07/connect4-engine/internal/transport/websocket"
	"github.com/iamasit07/connect4-engine/pkg/logx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("no .env file found, using environment variables")
		}
	}

	cfg := config.LoadConfig()
	logx.Configure(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Persistence is optional: without DATABASE_URL finished games are not kept
	var gameRepo *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		db, err := postgres.InitDB(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer postgres.CloseDB()
		gameRepo = postgres.NewGameRepo(db)
	} else {
		log.Warn().Str("component", "db").Msg("DATABASE_URL not set, game history disabled")
	}

	// 2. Redis bot move cache
	if err := redis.InitRedis(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("failed to initialize Redis")
	}
	defer redis.CloseRedis()

	var cache bot.MoveCache
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewMoveCache(redis.RedisClient, cfg.BotCacheTTL)
	}

	// 3. Services
	engine := bot.NewEngine(cfg.SearchDepth, cache)
	engine.Parallel = cfg.ParallelSearch

	var sessionManager *game.SessionManager
	var history *transportHttp.HistoryHandler
	if gameRepo != nil {
		sessionManager = game.NewSessionManager(gameRepo, engine)
		history = transportHttp.NewHistoryHandler(gameRepo)
	} else {
		sessionManager = game.NewSessionManager(nil, engine)
		history = transportHttp.NewHistoryHandler(nil)
	}

	connManager := websocket.NewConnectionManager()
	sessionManager.SetNotifier(connManager)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout)
	go cleanupWorker.Start(ctx)

	// 5. HTTP
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.Handlers{
		Game:      transportHttp.NewGameHandler(sessionManager),
		History:   history,
		Analyze:   transportHttp.NewAnalyzeHandler(cfg.SearchDepth),
		WebSocket: wsHandler.HandleWebSocket,
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Int("search_depth", engine.Depth).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// unfinished saves must land before the pool closes
	sessionManager.WaitForSaves()
	log.Info().Msg("server exited gracefully")
}
