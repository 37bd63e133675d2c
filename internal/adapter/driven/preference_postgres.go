package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool abstracts the subset of pgxpool.Pool used by the PostgreSQL store.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PreferencePostgresStore implements the PreferenceStore port using a
// PostgreSQL key/value table.
type PreferencePostgresStore struct {
	pool Pool
}

// NewPreferencePostgresStore creates a new PostgreSQL-backed preference store.
func NewPreferencePostgresStore(pool Pool) (*PreferencePostgresStore, error) {
	if pool == nil {
		return nil, errors.New("pool cannot be nil")
	}
	return &PreferencePostgresStore{pool: pool}, nil
}

// EnsureSchema creates the preferences table if it does not exist.
func (s *PreferencePostgresStore) EnsureSchema(ctx context.Context) error {
	sql := "CREATE TABLE IF NOT EXISTS app_prefs (key TEXT PRIMARY KEY, value TEXT NOT NULL)"
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *PreferencePostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	sql := "SELECT value FROM app_prefs WHERE key = $1"

	var value string
	if err := s.pool.QueryRow(ctx, sql, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get preference: %w", err)
	}

	return value, true, nil
}

// Set upserts value under key.
func (s *PreferencePostgresStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sql := "INSERT INTO app_prefs (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value"
	if _, err := s.pool.Exec(ctx, sql, key, value); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// Ping checks if the database is reachable.
func (s *PreferencePostgresStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}
