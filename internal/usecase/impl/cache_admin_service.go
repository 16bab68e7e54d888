package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cacheAdminService implements the CacheUsecase interface.
type cacheAdminService struct {
	cache  service.Cache
	logger *slog.Logger
}

// CacheAdminServiceParams holds dependencies for cacheAdminService, injected by Fx.
type CacheAdminServiceParams struct {
	fx.In

	Cache  service.Cache
	Logger *slog.Logger
}

// NewCacheAdminService is the constructor for cacheAdminService.
func NewCacheAdminService(params CacheAdminServiceParams) usecase.CacheUsecase {
	return &cacheAdminService{
		cache:  params.Cache,
		logger: params.Logger,
	}
}

func (srv *cacheAdminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Stats reports the cache backend's connection state and usage.
func (srv *cacheAdminService) Stats(ctx context.Context) (*entity.CacheStats, error) {
	stats, err := srv.cache.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cache stats")
	}

	return stats, nil
}

// Invalidate removes the keys matching a glob pattern. A bare key, one
// without glob metacharacters, is removed directly instead of scanning the
// whole keyspace.
func (srv *cacheAdminService) Invalidate(ctx context.Context, pattern string) (int64, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		if err := srv.cache.Delete(ctx, pattern); err != nil {
			return 0, errors.Wrap(err, "failed to invalidate cache key")
		}

		srv.log(ctx).Info("Cache key invalidated", slog.String("key", pattern))

		return 1, nil
	}

	deleted, err := srv.cache.DeletePattern(ctx, pattern)
	if err != nil {
		return deleted, errors.Wrap(err, "failed to invalidate cache pattern")
	}

	srv.log(ctx).Info("Cache pattern invalidated",
		slog.String("pattern", pattern),
		slog.Int64("deleted", deleted))

	return deleted, nil
}

// Clear removes all cached entries.
func (srv *cacheAdminService) Clear(ctx context.Context) error {
	if err := srv.cache.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}

	srv.log(ctx).Warn("Cache cleared")

	return nil
}
