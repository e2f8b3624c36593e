package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValueStore = (*BoltStore)(nil)

// BoltStore keeps values in a bbolt database file. Each origin gets its own
// bucket, so two clients pointing at the same file do not see each other's
// data.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
	log    *logger.Logger
}

// OpenBolt opens (creating if needed) the database at path and the bucket
// for origin.
func OpenBolt(path, origin string, log *logger.Logger) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	bucket := []byte("origin:" + origin)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create bucket: %w", err)
	}

	log.Debug("storage: opened %s (bucket %s)", path, bucket)
	return &BoltStore{db: db, bucket: bucket, log: log}, nil
}

// Get returns a copy of the value stored under key.
func (s *BoltStore) Get(key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			// Values are only valid for the life of the transaction.
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// Set overwrites the value stored under key.
func (s *BoltStore) Set(key string, value []byte) error {
	s.log.Debug("storage set %s (%d bytes)", key, len(value))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

// Remove deletes key. Removing an absent key is not an error.
func (s *BoltStore) Remove(key string) error {
	s.log.Debug("storage removed %s", key)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
