package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/storage"
)

// ErrTxContention is returned when a score update keeps losing optimistic-lock races
var ErrTxContention = errors.New("redis transaction contention")

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Settings operations

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, settingsKey(settings.ConversationID), data, s.cfg.SettingsTTL)
	queueScoreIndex(ctx, pipe, settings)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSettings(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	return getSettings(ctx, s.client, id)
}

func (s *Storage) DeleteSettings(ctx context.Context, id model.ConversationID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, settingsKey(id))
	pipe.ZRem(ctx, maxScoresIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Score operations

func (s *Storage) RecordScore(ctx context.Context, id model.ConversationID, score int) (bool, error) {
	key := settingsKey(id)
	var recorded bool

	txf := func(tx *redis.Tx) error {
		recorded = false
		settings, err := getSettings(ctx, tx, id)
		if errors.Is(err, model.ErrSettingsNotFound) {
			settings = model.DefaultSettings(id)
		} else if err != nil {
			return err
		}

		if score <= settings.MaxScore {
			return nil
		}
		settings.MaxScore = score

		data, err := json.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.SettingsTTL)
			queueScoreIndex(ctx, pipe, settings)
			return nil
		})
		if err == nil {
			recorded = true
		}
		return err
	}

	// Retry while another writer touches the same settings key
	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return recorded, err
	}
	return false, ErrTxContention
}

func (s *Storage) ResetScore(ctx context.Context, id model.ConversationID) error {
	settings, err := s.GetSettings(ctx, id)
	if errors.Is(err, model.ErrSettingsNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	settings.MaxScore = 0
	return s.SaveSettings(ctx, settings)
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]model.ScoreEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	results, err := s.client.ZRevRangeWithScores(ctx, maxScoresIndexKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.ScoreEntry, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue // Skip invalid data
		}
		entries = append(entries, model.ScoreEntry{
			ConversationID: model.ConversationID(member),
			Score:          int(z.Score),
		})
	}
	return entries, nil
}

// getter is satisfied by both *redis.Client and a watched *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// getSettings reads settings through either a client or a watched transaction
func getSettings(ctx context.Context, c getter, id model.ConversationID) (*model.Settings, error) {
	data, err := c.Get(ctx, settingsKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSettingsNotFound
		}
		return nil, err
	}

	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// queueScoreIndex keeps the leaderboard ZSET in sync with settings.MaxScore
func queueScoreIndex(ctx context.Context, pipe redis.Pipeliner, settings *model.Settings) {
	member := string(settings.ConversationID)
	if settings.MaxScore > 0 {
		pipe.ZAdd(ctx, maxScoresIndexKey(), redis.Z{Score: float64(settings.MaxScore), Member: member})
	} else {
		pipe.ZRem(ctx, maxScoresIndexKey(), member)
	}
}
