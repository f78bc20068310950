package repository

import (
	"context"
	"sync"
)

// MemoryKVStore is an in-process KVStore. It backs the cart engine in
// tests and when the service runs without a database (CART_STORE=memory);
// carts then live only as long as the process.
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKVStore creates an empty in-memory store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		data: make(map[string]string),
	}
}

// Ensure MemoryKVStore implements KVStore
var _ KVStore = (*MemoryKVStore)(nil)

// GetItem returns the value stored under key
func (s *MemoryKVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// SetItem stores value under key
func (s *MemoryKVStore) SetItem(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// RemoveItem deletes key; removing a missing key is a no-op
func (s *MemoryKVStore) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys (used by tests)
func (s *MemoryKVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
