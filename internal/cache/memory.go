package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process Cache backed by go-cache.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a MemoryCache whose entries default to ttl and are
// swept every cleanup interval.
func NewMemoryCache(ttl, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, cleanup)}
}

// Get retrieves a value from the in-process cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		m.store.Delete(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores a copy of value. A zero ttl uses the cache default.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a value.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}
