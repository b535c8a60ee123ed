package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/eventease/internal/api"
	"github.com/mcoot/eventease/internal/config"
	"github.com/mcoot/eventease/internal/factory"
	"github.com/mcoot/eventease/internal/notify"
	redisstorage "github.com/mcoot/eventease/internal/storage/redis"
	"github.com/mcoot/eventease/internal/sse"
)

// hubCleanupInterval is how often idle live-stream hubs are closed
const hubCleanupInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = cfg.SessionTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Stream notifications to Kafka when brokers are configured
	if len(cfg.KafkaBrokers) > 0 {
		kafkaCfg := notify.DefaultKafkaConfig()
		kafkaCfg.Brokers = cfg.KafkaBrokers
		kafkaCfg.Topic = cfg.KafkaTopic
		factoryCfg.Kafka = &kafkaCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("error closing application", slog.String("error", err.Error()))
		}
	}()

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.SeedEvents {
		seeded, err := app.Catalog.Seed(ctx)
		if err != nil {
			logger.Warn("could not seed catalog", slog.String("error", err.Error()))
		} else if len(seeded) > 0 {
			logger.Info("seeded sample events", slog.Int("count", len(seeded)))
		}
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Clock:         app.Clock,
		Catalog:       app.Catalog,
		Registrations: app.Registrations,
		Attendance:    app.Attendance,
		Sessions:      app.Sessions,
		QR:            app.QR,
		HubManager:    app.HubManager,
	})

	// Create server
	server := api.NewServer(apiRouter, api.DefaultServerConfig(cfg.Addr()), logger)

	go cleanupHubs(ctx, app.HubManager, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("env", cfg.Environment),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Close streams first so open SSE connections don't hold up shutdown
		app.HubManager.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// cleanupHubs periodically closes hubs nobody is listening to
func cleanupHubs(ctx context.Context, hubManager *sse.HubManager, logger *slog.Logger) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := hubManager.CleanupEmptyHubs(); n > 0 {
				logger.Debug("closed idle stream hubs", slog.Int("count", n))
			}
		}
	}
}
