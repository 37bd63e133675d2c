package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-player/config"
	"github.com/alorle/iptv-player/internal/adapter/driven"
	"github.com/alorle/iptv-player/internal/memory"
	port "github.com/alorle/iptv-player/internal/port/driven"
)

// newLogger creates a structured JSON logger writing to w.
func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openPreferenceStore opens the configured preference store. The returned
// cleanup function releases the underlying database handle.
func openPreferenceStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.PreferenceStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Warn("using in-memory preference store, channel list will not survive restarts")
		return memory.NewPreferenceStore(), func() {}, nil

	case config.StorePostgres:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		store, err := driven.NewPreferencePostgresStore(pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		db, err := bbolt.Open(cfg.Store.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Error("error closing database", "error", err)
			}
		}

		store, err := driven.NewPreferenceBoltDBStore(db)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return store, cleanup, nil
	}
}

// newChannelCodec returns the codec for the configured encoding.
func newChannelCodec(cfg *config.Config) port.ChannelCodec {
	if cfg.Store.Encoding == config.EncodingYAML {
		return driven.NewYAMLChannelCodec()
	}
	return driven.NewJSONChannelCodec()
}

// newPlayer returns an external player, or a logging player when no
// command is configured.
func newPlayer(cfg *config.Config, logger *slog.Logger) port.Player {
	if cfg.Player.Command == "" {
		logger.Info("no player command configured, playback will only be logged")
		return driven.NewLogPlayer(logger)
	}
	return driven.NewExecPlayer(cfg.Player.Command, cfg.Player.Args, cfg.Player.StopTimeout, logger)
}
