// Package cache stores computed layout artifacts: grid plans, overlay
// renderings and scene check reports.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// API server and [NullCache] when caching is disabled. Keys come from a
// [Keyer] so that every backend agrees on the key layout.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/anchor/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss returns ok == false and no error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result. Cache read and write failures are ignored and fall through to
// compute. keyType names the artifact kind for the cache hooks.
func GetOrCompute(ctx context.Context, c Cache, keyType, key string, ttl time.Duration, compute func() ([]byte, error)) (data []byte, hit bool, err error) {
	hooks := observability.Cache()
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, keyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, keyType)
	data, err = compute()
	if err != nil {
		return nil, false, err
	}
	if c.Set(ctx, key, data, ttl) == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}
