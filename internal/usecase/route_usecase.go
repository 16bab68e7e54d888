package usecase

import (
	"context"

	"trackwise/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateRouteInput defines the data required to save a route.
type CreateRouteInput struct {
	Name        string
	Origin      string
	Destination string
	RouteTypes  string
	Notes       string
	IsFavorite  bool
}

// UpdateRouteInput defines the mutable saved-route fields. Nil fields are
// left unchanged.
type UpdateRouteInput struct {
	Name        *string
	Origin      *string
	Destination *string
	RouteTypes  *string
	Notes       *string
	IsFavorite  *bool
}

// RouteUsecase defines the interface for saved-route operations. All
// operations are scoped to the owning user; access to another user's route
// fails with ErrRouteNotFound rather than revealing its existence.
type RouteUsecase interface {
	// ListRoutes returns the user's active saved routes, favorites first.
	ListRoutes(ctx context.Context, userID uuid.UUID) ([]*entity.SavedRoute, error)

	// GetRoute returns a single saved route owned by the user.
	GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*entity.SavedRoute, error)

	// CreateRoute saves a new route for the user.
	CreateRoute(ctx context.Context, userID uuid.UUID, input *CreateRouteInput) (*entity.SavedRoute, error)

	// UpdateRoute applies partial changes to a saved route owned by the user.
	UpdateRoute(ctx context.Context, userID, routeID uuid.UUID, input *UpdateRouteInput) (*entity.SavedRoute, error)

	// DeleteRoute soft-deletes a saved route owned by the user.
	DeleteRoute(ctx context.Context, userID, routeID uuid.UUID) error
}
