package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key written by the store
	KeyPrefix string

	// MaxUpdateRetries bounds optimistic-lock retries when concurrent
	// writers touch the same player
	MaxUpdateRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		KeyPrefix:        "playerbase",
		MaxUpdateRetries: 10,
	}
}
