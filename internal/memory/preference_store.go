package memory

import (
	"context"
	"sync"
)

// PreferenceStore is a map-backed implementation of the PreferenceStore port.
// Nothing survives the process; it backs tests and --store=memory runs.
type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPreferenceStore creates an empty in-memory store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *PreferenceStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Ping always succeeds unless ctx is done.
func (s *PreferenceStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
