package config

import (
	"os"
	"strconv"
	"time"
)

type CacheConfig struct {
	// ConcurrencySafe guards the store with a mutex.
	ConcurrencySafe bool
}

type DemoConfig struct {
	// DSN is the SQLite database the demo reads profiles from.
	DSN string
	// TTL is how long looked-up profiles stay cached.
	TTL time.Duration
}

type Config struct {
	Cache    CacheConfig
	Demo     DemoConfig
	LogLevel string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return b
}

func Load() (*Config, error) {
	ttl := func() time.Duration {
		n, err := strconv.Atoi(getenv("DEMO_TTL_SECONDS", "30"))
		if err != nil || n < 0 {
			return 30 * time.Second
		}
		return time.Duration(n) * time.Second
	}()

	return &Config{
		Cache: CacheConfig{
			ConcurrencySafe: getenvBool("CACHE_CONCURRENCY_SAFE", true),
		},
		Demo: DemoConfig{
			DSN: getenv("DEMO_DSN", ":memory:"),
			TTL: ttl,
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
	}, nil
}
