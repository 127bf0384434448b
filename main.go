package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"seatmap-engine/cmd"
	"seatmap-engine/internal/data/repository"
	"seatmap-engine/internal/wire"
	"seatmap-engine/pkg/broker"
	"seatmap-engine/pkg/cache"
	"seatmap-engine/pkg/database"
	"seatmap-engine/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Seatmap cache: redis when configured, in-process otherwise
	var store cache.Service
	if config.Redis.Addr != "" {
		client, err := cache.InitRedis(config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		store = cache.NewService(client)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory cache")
		store = cache.NewMemoryService()
	}

	// Selection events
	var publisher broker.Publisher
	if config.RabbitMQ.URL != "" {
		publisher = broker.NewRabbitPublisher(config.RabbitMQ.URL, logger)
	} else {
		logger.Warn("RABBITMQ_URL not set, selection events are dropped")
		publisher = broker.NewNopPublisher(logger)
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, store, publisher, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
