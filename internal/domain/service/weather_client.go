package service

import (
	"context"

	"trackwise/internal/domain/entity"
)

// WeatherClient fetches current conditions from the upstream weather API.
type WeatherClient interface {
	// CurrentWeather retrieves the current conditions for a location.
	// Units is "metric" or "imperial". Upstream failures surface as
	// ErrUpstreamUnavailable.
	CurrentWeather(ctx context.Context, location, units string) (*entity.CurrentWeather, error)
}
