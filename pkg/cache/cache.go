// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the user cache directory), [RedisCache] for the HTTP
// server, and [NullCache] to switch caching off. Keys come from a
// [Keyer], which hashes every option that affects the output.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/stackgantt/pkg/observability"
)

// Cache is a byte store with per-entry expiry. Get reports a miss with
// ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Fetch returns the entry for key, computing and storing it with fn on a
// miss. kind names the key type for the cache hooks. A failed write is
// not an error; the computed value is still returned.
func Fetch(ctx context.Context, c Cache, kind, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, kind)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	data, err := fn()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return data, false, nil
}
