package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ttl-cache/internal/cache"
	"ttl-cache/internal/config"
	"ttl-cache/internal/database"
	"ttl-cache/internal/logging"
	"ttl-cache/internal/profiles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(cfg.Demo.DSN); err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}

	store := cache.InitDefault(cache.Options{
		SingleThreaded: !cfg.Cache.ConcurrencySafe,
		Logger:         &logger,
	})
	lookup := profiles.NewLookup(database.GetDB(), store, cfg.Demo.TTL, logger)

	// Seed a couple of rows; the database is the source of truth behind the cache.
	ada, err := lookup.Create(ctx, "ada", "Ada Lovelace", "ada@example.com")
	if err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}
	if _, err := lookup.Create(ctx, "grace", "Grace Hopper", "grace@example.com"); err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}
	if err := lookup.Invalidate(ada.ID); err != nil {
		logger.Fatal().Err(err).Msg("invalidate failed")
	}
	if _, err := lookup.Warm(ctx); err != nil {
		logger.Fatal().Err(err).Msg("warm failed")
	}

	// -------------------------------------------------------------------
	// 1) Cross-contract visibility: write through Simple, read through Pool
	// -------------------------------------------------------------------
	simple := cache.NewSimple(store)
	pool := cache.NewPool(store)

	if _, err := simple.Set("greeting", "hello", 2); err != nil {
		logger.Fatal().Err(err).Msg("set failed")
	}
	item, err := pool.GetItem("greeting")
	if err != nil {
		logger.Fatal().Err(err).Msg("get item failed")
	}
	logger.Info().
		Str("key", item.Key()).
		Bool("hit", item.IsHit()).
		Interface("value", item.Value()).
		Stringer("expires_at", item.Expiration()).
		Msg("simple write seen by pool")

	// -------------------------------------------------------------------
	// 2) Cache-aside profile reads
	// -------------------------------------------------------------------
	p, err := lookup.Get(ctx, ada.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("profile lookup failed")
	}
	logger.Info().Str("id", p.ID).Str("name", p.DisplayName).Msg("profile served")

	if err := lookup.Rename(ctx, ada.ID, "Countess of Lovelace"); err != nil {
		logger.Fatal().Err(err).Msg("rename failed")
	}
	if p, err = lookup.Get(ctx, ada.ID); err == nil {
		logger.Info().Str("id", p.ID).Str("name", p.DisplayName).Msg("profile reloaded after rename")
	}

	// -------------------------------------------------------------------
	// 3) TTL expiry (lazy: the read after the deadline removes the entry)
	// -------------------------------------------------------------------
	logger.Info().Strs("keys", store.Keys()).Msg("keys before expiry")

	wait := time.NewTimer(3 * time.Second)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
		return
	case <-wait.C:
	}

	v, err := simple.Get("greeting", "<expired>")
	if err != nil {
		logger.Fatal().Err(err).Msg("get failed")
	}
	logger.Info().Interface("greeting", v).Strs("keys", store.Keys()).Msg("keys after expiry")

	if _, err := simple.Set("bad:key", 1, nil); err != nil {
		logger.Warn().Err(err).Msg("rejected key")
	}
	logger.Info().Msg("bye")
}
