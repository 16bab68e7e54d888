package usecase

import (
	"context"

	"trackwise/internal/domain/entity"
)

// TransitUsecase defines the interface for real-time transit lookups.
type TransitUsecase interface {
	// StopArrivals returns predicted arrivals for a stop, optionally
	// filtered by route, serving from cache when a fresh entry exists.
	StopArrivals(ctx context.Context, stopID, routeID string) ([]*entity.StopArrival, error)
}
