package usecase

import (
	"context"

	"trackwise/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register with a password.
type RegisterUserInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the mutable profile fields. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	FullName  *string
	AvatarURL *string
	Username  *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *entity.SanitizedUser
}

// LoginOutput returns the session credential after a successful login.
type LoginOutput struct {
	SessionToken string
	TokenType    string
	User         *entity.SanitizedUser
}

// UserUsecase defines the interface for account operations.
type UserUsecase interface {
	// Register creates a password-backed account.
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)

	// Login authenticates a password-backed account and issues a session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetByEmail retrieves the account for the session subject.
	GetByEmail(ctx context.Context, email string) (*entity.SanitizedUser, error)

	// UpdateProfile applies partial profile changes to the account
	// identified by email.
	UpdateProfile(ctx context.Context, email string, input *UpdateProfileInput) (*entity.SanitizedUser, error)
}
