package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps payloads in process memory and is safe for concurrent use.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache constructs a MemoryCache whose expired entries are swept every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns a copy of the cached payload.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	payload, ok := raw.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Set stores a copy of value. A zero ttl uses the cache default.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Len reports the number of stored entries, expired ones included until swept.
func (m *MemoryCache) Len() int {
	return m.store.ItemCount()
}
