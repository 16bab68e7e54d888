package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trackwise/config"
	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"go.uber.org/fx"
)

const defaultWeatherCacheTTL = 5 * time.Minute

// weatherService implements the WeatherUsecase interface with a
// read-through cache in front of the upstream client.
type weatherService struct {
	client   service.WeatherClient
	cache    service.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// WeatherServiceParams holds dependencies for weatherService, injected by Fx.
type WeatherServiceParams struct {
	fx.In

	Client service.WeatherClient
	Cache  service.Cache
	Config *config.Config
	Logger *slog.Logger
}

// NewWeatherService is the constructor for weatherService.
func NewWeatherService(params WeatherServiceParams) usecase.WeatherUsecase {
	cacheTTL := defaultWeatherCacheTTL
	if params.Config.Weather != nil && params.Config.Weather.CacheTTL > 0 {
		cacheTTL = params.Config.Weather.CacheTTL
	}

	return &weatherService{
		client:   params.Client,
		cache:    params.Cache,
		cacheTTL: cacheTTL,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *weatherService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CurrentWeather returns current conditions for a location, serving from
// cache when a fresh entry exists. Cache failures degrade to an upstream
// fetch instead of failing the request.
func (srv *weatherService) CurrentWeather(ctx context.Context, location, units string) (*entity.CurrentWeather, error) {
	if units != "imperial" {
		units = "metric"
	}
	key := weatherCacheKey(location, units)

	if cached, err := srv.cache.Get(ctx, key); err != nil {
		srv.log(ctx).Warn("Weather cache read failed", slog.Any("error", err))
	} else if cached != nil {
		var current entity.CurrentWeather
		if err := json.Unmarshal(cached, &current); err == nil {
			return &current, nil
		}
		srv.log(ctx).Warn("Discarding undecodable weather cache entry", slog.String("key", key))
	}

	current, err := srv.client.CurrentWeather(ctx, location, units)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(current); err == nil {
		if err := srv.cache.Set(ctx, key, encoded, srv.cacheTTL); err != nil {
			srv.log(ctx).Warn("Weather cache write failed", slog.Any("error", err))
		}
	}

	return current, nil
}

// WarmCache re-fetches the given locations into the cache. Individual
// failures are logged and skipped so one bad location cannot stall the rest.
func (srv *weatherService) WarmCache(ctx context.Context, locations []string) {
	for _, location := range locations {
		key := weatherCacheKey(location, "metric")

		current, err := srv.client.CurrentWeather(ctx, location, "metric")
		if err != nil {
			srv.log(ctx).Warn("Cache warm fetch failed",
				slog.String("location", location), slog.Any("error", err))

			continue
		}

		encoded, err := json.Marshal(current)
		if err != nil {
			continue
		}
		if err := srv.cache.Set(ctx, key, encoded, srv.cacheTTL); err != nil {
			srv.log(ctx).Warn("Cache warm write failed",
				slog.String("location", location), slog.Any("error", err))
		}
	}
}

func weatherCacheKey(location, units string) string {
	return fmt.Sprintf("weather:%s:%s", strings.ToLower(location), units)
}
