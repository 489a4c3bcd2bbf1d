package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SettingsTTL expires idle conversations' settings; 0 keeps them forever
	SettingsTTL time.Duration

	// MaxTxRetries bounds optimistic-lock retries when recording scores
	MaxTxRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SettingsTTL:  30 * 24 * time.Hour,
		MaxTxRetries: 5,
	}
}
