package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/linkgame/internal/api"
	"github.com/mcoot/linkgame/internal/factory"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/game"
	redisstorage "github.com/mcoot/linkgame/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	gameCfg, err := gameConfigFromEnv()
	if err != nil {
		logger.Error("invalid game configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType:  os.Getenv("STORAGE_TYPE"),
		GameConfig:   gameCfg,
		HintStrategy: os.Getenv("LINKGAME_HINT_STRATEGY"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.GameController.Close()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(apiRouter, serverConfig, logger)
	server.OnShutdown(app.HubManager.CloseAll)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Drop hubs nobody is listening to
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.HubManager.CleanupEmptyHubs()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Int("max_bends", gameCfg.BendPolicy.MaxBends),
		slog.Duration("pair_time_budget", gameCfg.PerPairTimeBudget),
		slog.String("hint_strategy", model.HintStrategyDisplayName(cfg.HintStrategy)),
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
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// gameConfigFromEnv reads the bend policy and time budget, starting from the defaults
func gameConfigFromEnv() (game.Config, error) {
	cfg := game.DefaultConfig()

	if v := os.Getenv("LINKGAME_MAX_BENDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("LINKGAME_MAX_BENDS: %q is not a non-negative integer", v)
		}
		cfg.BendPolicy.MaxBends = n
	}
	if v := os.Getenv("LINKGAME_SIDE_FREE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("LINKGAME_SIDE_FREE: %w", err)
		}
		cfg.BendPolicy.SideFree = b
	}
	if v := os.Getenv("LINKGAME_MORE_SIDE_FREE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("LINKGAME_MORE_SIDE_FREE: %w", err)
		}
		cfg.BendPolicy.MoreSideFree = b
	}
	if v := os.Getenv("LINKGAME_PAIR_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("LINKGAME_PAIR_SECONDS: %q is not a positive integer", v)
		}
		cfg.PerPairTimeBudget = time.Duration(n) * time.Second
	}

	return cfg, nil
}
