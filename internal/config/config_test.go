package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CACHE_CONCURRENCY_SAFE", "")
	t.Setenv("DEMO_DSN", "")
	t.Setenv("DEMO_TTL_SECONDS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Cache.ConcurrencySafe)
	require.Equal(t, ":memory:", cfg.Demo.DSN)
	require.Equal(t, 30*time.Second, cfg.Demo.TTL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CACHE_CONCURRENCY_SAFE", "false")
	t.Setenv("DEMO_DSN", "file::memory:?cache=shared")
	t.Setenv("DEMO_TTL_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Cache.ConcurrencySafe)
	require.Equal(t, "file::memory:?cache=shared", cfg.Demo.DSN)
	require.Equal(t, 5*time.Second, cfg.Demo.TTL)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_CONCURRENCY_SAFE", "maybe")
	t.Setenv("DEMO_TTL_SECONDS", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Cache.ConcurrencySafe)
	require.Equal(t, 30*time.Second, cfg.Demo.TTL)
}
