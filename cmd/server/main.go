package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/highcard-game/highcard-server/internal/broadcast"
	"github.com/highcard-game/highcard-server/internal/config"
	"github.com/highcard-game/highcard-server/internal/database"
	"github.com/highcard-game/highcard-server/internal/game"
	"github.com/highcard-game/highcard-server/internal/handler"
	"github.com/highcard-game/highcard-server/internal/middleware"
	"github.com/highcard-game/highcard-server/internal/queue"
	"github.com/highcard-game/highcard-server/internal/repository"
	"github.com/highcard-game/highcard-server/internal/router"
	queue_publisher "github.com/highcard-game/highcard-server/internal/service"
	"github.com/highcard-game/highcard-server/internal/store"
	"github.com/highcard-game/highcard-server/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	// Durable stores: MySQL mirror when configured, in-memory otherwise.
	var (
		players store.PlayerStore
		moves   store.MoveStore
	)
	if cfg.UseDB() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			logger.Fatal("database connection failed", "error", err)
		}
		defer db.Close()
		players = repository.NewPlayerRepo(db)
		moves = repository.NewMoveRepo(db)
		logger.Info("using mysql stores", "host", cfg.DBHost, "db", cfg.DBName)
	} else {
		players = store.NewMemoryPlayerStore()
		moves = store.NewMemoryMoveStore()
		logger.Info("using in-memory stores")
	}

	// Broadcast gateway: the websocket hub always, Redis pub/sub when
	// a Redis server is reachable.
	hub := ws.NewHub(logger)
	sinks := broadcast.Fanout{hub}
	rdb := config.NewRedisClient()
	if rdb != nil {
		sinks = append(sinks, broadcast.NewRedisPublisher(rdb, logger))
		logger.Info("redis connected, cross-node broadcast enabled")
	}

	registry := game.NewRegistry(players, moves, sinks, logger)
	hub.SetStateProvider(registry)
	go hub.Run()
	defer hub.Stop()

	// Move audit feed: consume move.played into logs/moves.log when a
	// broker is configured.
	if queue_publisher.Enabled() {
		go queue.StartMoveConsumer(queue_publisher.BrokerURL())
		logger.Info("move consumer started", "queue", "move.played")
	}

	e := echo.New()
	e.HideBanner = true
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, hub)
	router.RegisterAPI(e, handler.NewPlayerHandler(players), handler.NewGameHandler(registry), limiter)

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
