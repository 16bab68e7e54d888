// Package cache implements the Cache service on Redis.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const startupPingTimeout = 5 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// redisCache implements service.Cache on a Redis connection.
type redisCache struct {
	client *redis.Client
}

// New creates the Redis-backed cache and ties the connection to the fx lifecycle.
func New(params Params) (service.Cache, error) {
	if params.Config.Redis == nil {
		return nil, errors.New("redis configuration is missing")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, startupPingTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Connected to redis", slog.String("addr", params.Config.Redis.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return &redisCache{client: client}, nil
}

// Get retrieves a cached value. A miss returns (nil, nil).
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cache")
	}

	return value, nil
}

// Set stores a value with the given TTL.
func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write cache")
	}

	return nil
}

// Delete removes a key.
func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete cache key")
	}

	return nil
}

// deleteBatchSize bounds how many keys one DEL command carries while a
// pattern scan is draining.
const deleteBatchSize = 500

// DeletePattern removes every key matching a glob pattern via SCAN, so large
// keyspaces are drained without blocking the server.
func (c *redisCache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	var (
		deleted int64
		batch   []string
	)

	iter := c.client.Scan(ctx, 0, pattern, int64(deleteBatchSize)).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= deleteBatchSize {
			count, err := c.client.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, errors.Wrap(err, "failed to delete cache keys")
			}
			deleted += count
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, errors.Wrap(err, "failed to scan cache keys")
	}

	if len(batch) > 0 {
		count, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return deleted, errors.Wrap(err, "failed to delete cache keys")
		}
		deleted += count
	}

	return deleted, nil
}

// Clear removes all keys in the configured database.
func (c *redisCache) Clear(ctx context.Context) error {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}

	return nil
}

// Stats reports connection state, key count and memory usage.
func (c *redisCache) Stats(ctx context.Context) (*entity.CacheStats, error) {
	stats := &entity.CacheStats{}

	if err := c.client.Ping(ctx).Err(); err != nil {
		return stats, nil
	}
	stats.Connected = true

	keys, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count cache keys")
	}
	stats.Keys = keys

	info, err := c.client.Info(ctx, "memory").Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cache memory info")
	}
	stats.UsedMemory = parseUsedMemoryHuman(info)

	return stats, nil
}

// parseUsedMemoryHuman extracts the used_memory_human field from an INFO
// memory section.
func parseUsedMemoryHuman(info string) string {
	for _, line := range strings.Split(info, "\n") {
		if value, ok := strings.CutPrefix(line, "used_memory_human:"); ok {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
