// Package kvstore is the string-keyed storage capability backing session
// state. Callers never check where values live: the concrete store is
// chosen once at startup. Get returns "" with a nil error for missing keys.
package kvstore

import (
	"context"
	"sync"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// NullStore drops every write and never finds a key. It stands in when no
// backing store is configured, mirroring storage access outside a client
// context: every operation is a no-op.
type NullStore struct{}

func (NullStore) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (NullStore) Set(ctx context.Context, key, value string) error    { return nil }
func (NullStore) Remove(ctx context.Context, key string) error        { return nil }

// MemoryStore keeps values in a map. Used in tests and single-terminal
// deployments without Redis.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
