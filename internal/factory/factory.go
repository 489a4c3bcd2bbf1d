package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/linkgame/internal/dependencies/clock"
	"github.com/mcoot/linkgame/internal/dependencies/random"
	"github.com/mcoot/linkgame/internal/events"
	"github.com/mcoot/linkgame/internal/services/board"
	"github.com/mcoot/linkgame/internal/services/game"
	"github.com/mcoot/linkgame/internal/services/hint"
	"github.com/mcoot/linkgame/internal/services/scoring"
	"github.com/mcoot/linkgame/internal/storage"
	"github.com/mcoot/linkgame/internal/storage/memory"
	redisstorage "github.com/mcoot/linkgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	ScoringService *scoring.Service
	GameController *game.Controller
	HubManager     *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GameConfig holds the bend policy and time budget (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// BoardConfig holds the pattern catalogue (optional)
	BoardConfig board.Config
	// ScoringConfig holds the timed-mode scoring rules (optional)
	ScoringConfig scoring.Config
	// HintStrategy names the hint strategy (see model.ValidHintStrategies)
	// If empty, defaults to random
	HintStrategy string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	strategy, err := hint.StrategyByName(cfg.HintStrategy, rnd)
	if err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clk, rnd, strategy, withDefaults(cfg), logger), nil
}

// withDefaults fills any zero-valued service configs
func withDefaults(cfg Config) Config {
	if cfg.GameConfig.PerPairTimeBudget == 0 {
		cfg.GameConfig = game.DefaultConfig()
	}
	if len(cfg.BoardConfig.Patterns) == 0 {
		cfg.BoardConfig = board.DefaultConfig()
	}
	if cfg.ScoringConfig.PairPoints == 0 {
		cfg.ScoringConfig = scoring.DefaultConfig()
	}
	return cfg
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, strategy hint.Strategy, cfg Config, logger *slog.Logger) *App {
	// Create services
	boardService := board.New(cfg.BoardConfig, rnd, logger)
	scoringService := scoring.New(cfg.ScoringConfig)
	hubManager := events.NewHubManager(logger)
	gameController := game.NewController(cfg.GameConfig, store, boardService, scoringService, strategy, clk, hubManager, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		ScoringService: scoringService,
		GameController: gameController,
		HubManager:     hubManager,
	}
}
