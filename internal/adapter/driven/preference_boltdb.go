package driven

import (
	"context"
	"errors"

	"go.etcd.io/bbolt"
)

const (
	preferencesBucket = "app_prefs"
)

// PreferenceBoltDBStore implements the PreferenceStore port using BoltDB.
type PreferenceBoltDBStore struct {
	db *bbolt.DB
}

// NewPreferenceBoltDBStore creates a new BoltDB-backed preference store.
// It initializes the required bucket if it doesn't exist.
func NewPreferenceBoltDBStore(db *bbolt.DB) (*PreferenceBoltDBStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(preferencesBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PreferenceBoltDBStore{db: db}, nil
}

// Get retrieves the value stored under key from BoltDB.
func (s *PreferenceBoltDBStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		value string
		found bool
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(preferencesBucket))
		if bucket == nil {
			return errors.New("preferences bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}

		// data is only valid inside the transaction
		value = string(data)
		found = true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return value, found, nil
}

// Set writes value under key, replacing any prior value.
func (s *PreferenceBoltDBStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(preferencesBucket))
		if bucket == nil {
			return errors.New("preferences bucket not found")
		}

		return bucket.Put([]byte(key), []byte(value))
	})
}

// Ping checks if the BoltDB database is accessible and operational.
func (s *PreferenceBoltDBStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(preferencesBucket)) == nil {
			return errors.New("preferences bucket not found")
		}
		return nil
	})
}
