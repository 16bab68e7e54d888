// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"trackwise/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRouteNotFound is returned when no saved route matches the lookup.
var ErrRouteNotFound = errors.New("saved route not found")

// SavedRouteRepository defines the standard operations for saved-route persistence.
type SavedRouteRepository interface {
	// FindByID retrieves a single saved route by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SavedRoute, error)

	// ListByUserID retrieves all active saved routes belonging to a user,
	// favorites first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavedRoute, error)

	// Create persists a new saved route.
	Create(ctx context.Context, route *entity.SavedRoute) error

	// Update modifies an existing saved route.
	Update(ctx context.Context, route *entity.SavedRoute) error

	// Delete removes a saved route.
	Delete(ctx context.Context, id uuid.UUID) error
}
