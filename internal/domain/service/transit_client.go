package service

import (
	"context"

	"trackwise/internal/domain/entity"
)

// TransitClient fetches real-time arrival predictions from the upstream
// transit data feed.
type TransitClient interface {
	// StopArrivals retrieves predicted arrivals for a monitored stop,
	// optionally filtered to a single route. Upstream failures surface as
	// ErrUpstreamUnavailable.
	StopArrivals(ctx context.Context, stopID, routeID string) ([]*entity.StopArrival, error)
}
