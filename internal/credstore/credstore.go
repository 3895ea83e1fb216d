// Package credstore persists the galaxy credential pair across sessions.
// Persistence is opt-in: callers only write through Remember when the
// operator has enabled remembering, and Forget removes every trace.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"galcon/internal/model"
)

var (
	bucketCreds = []byte("credentials")
	keyGalaxy   = []byte("galaxy")
)

// Store is a bbolt-backed credential store.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCreds)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Remember persists the credential pair under the fixed namespace.
func (s *Store) Remember(creds model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCreds)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put(keyGalaxy, data)
	})
}

// Forget removes the persisted pair. Missing data is not an error: the
// guarantee is that a subsequent Load reports absent.
func (s *Store) Forget() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCreds)
		if b == nil {
			return nil
		}
		return b.Delete(keyGalaxy)
	})
}

// Load restores the persisted pair. It is best-effort: absent or corrupt
// stored data yields (zero, false, nil) rather than an error.
func (s *Store) Load() (model.Credentials, bool, error) {
	var creds model.Credentials
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCreds)
		if b == nil {
			return nil
		}
		data := b.Get(keyGalaxy)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &creds); err != nil {
			// treat unparseable state as absent
			creds = model.Credentials{}
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return model.Credentials{}, false, err
	}
	return creds, found, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
