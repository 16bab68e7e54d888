// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trackwise/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific persistence errors. The application layer handles these
// without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateKey is returned when an insert or update violates one of
	// the user table's unique constraints (email, username, google_id,
	// apple_id). The social auth flow converts it to a retryable conflict.
	ErrDuplicateKey = errors.New("duplicate key violates unique constraint")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByProviderID retrieves the user whose linked identity for the
	// given provider matches the provider-scoped user id.
	FindByProviderID(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.User, error)

	// Create persists a new user entity. Uniqueness violations surface as
	// ErrDuplicateKey.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity.
	Update(ctx context.Context, user *entity.User) error
}
