package wikidata

import (
	"context"
	"sync"
)

// MemoryCache is an in-process entity cache backed by a map. Used when
// Redis is disabled and by tests that need a deterministic cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty in-memory entity cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]byte),
	}
}

// Get returns the cached bytes for a key
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, found := m.entries[key]
	if !found {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached bytes
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores bytes under a key
func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
	return nil
}

// Len returns the number of cached entries
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
