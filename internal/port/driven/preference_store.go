package driven

import "context"

// PreferenceStore defines the interface for a string-keyed persistent store.
// This is a driven port implemented by concrete adapters (e.g., BoltDB, PostgreSQL).
type PreferenceStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Ping checks if the store is accessible and operational.
	Ping(ctx context.Context) error
}
