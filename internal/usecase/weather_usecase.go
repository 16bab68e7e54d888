package usecase

import (
	"context"

	"trackwise/internal/domain/entity"
)

// WeatherUsecase defines the interface for weather lookups served from the
// cache-backed upstream client.
type WeatherUsecase interface {
	// CurrentWeather returns current conditions for a location, serving
	// from cache when a fresh entry exists.
	CurrentWeather(ctx context.Context, location, units string) (*entity.CurrentWeather, error)

	// WarmCache re-fetches the given locations into the cache. Used by the
	// background scheduler.
	WarmCache(ctx context.Context, locations []string)
}
