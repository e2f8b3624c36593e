// Package storage provides origin-scoped key/value persistence for JSON
// blobs, the equivalent of a browser's local storage.
package storage

import (
	"errors"
	"sync"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValueStore = (*MemoryStore)(nil)

// errQuota is returned by writes while FailWrites is set.
var errQuota = errors.New("storage quota exceeded")

// MemoryStore is an in-memory store. Safe for concurrent access.
// Contents are lost when the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
	log   *logger.Logger

	// FailWrites makes Set and Remove fail, simulating a full quota.
	FailWrites bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
		log:   log,
	}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		s.log.Debug("storage miss: %s", key)
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set overwrites the value stored under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errQuota
	}
	s.log.Debug("storage set %s (%d bytes)", key, len(value))
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errQuota
	}
	delete(s.items, key)
	s.log.Debug("storage removed %s", key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
