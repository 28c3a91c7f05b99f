// Package memory provides a process-local room record store.
package memory

import (
	"context"
	"sort"
	"sync"

	"setgame/internal/ports"
)

// Store is an in-memory KeyValueStore. Records do not survive a restart.
type Store struct {
	mu    sync.RWMutex
	store map[string][]byte
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{store: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	val, ok := s.store[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.store[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.store))
	for k := range s.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
