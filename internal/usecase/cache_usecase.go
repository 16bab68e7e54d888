package usecase

import (
	"context"

	"trackwise/internal/domain/entity"
)

// CacheUsecase exposes administrative operations over the response cache.
type CacheUsecase interface {
	// Stats reports the cache backend's connection state and usage.
	Stats(ctx context.Context) (*entity.CacheStats, error)

	// Invalidate removes the keys matching a glob pattern and returns how
	// many were removed. A pattern without wildcards removes that one key.
	Invalidate(ctx context.Context, pattern string) (int64, error)

	// Clear removes all cached entries.
	Clear(ctx context.Context) error
}
