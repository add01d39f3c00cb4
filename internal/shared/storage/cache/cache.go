// Package cache stores raw upstream payloads keyed by request identity.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores opaque payloads with a time-to-live.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key joins parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set discards the value.
func (Nop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return ctx.Err()
}

var (
	_ Cache = Nop{}
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*SQLCache)(nil)
)
