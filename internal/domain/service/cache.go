package service

import (
	"context"
	"time"

	"trackwise/internal/domain/entity"
)

// Cache is a key/value store with per-entry expiry, backed by Redis in
// production. Values are stored as JSON-encoded bytes.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern and returns
	// the number of keys removed.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Clear removes all keys.
	Clear(ctx context.Context) error

	// Stats reports connection state, key count and memory usage.
	Stats(ctx context.Context) (*entity.CacheStats, error)
}
