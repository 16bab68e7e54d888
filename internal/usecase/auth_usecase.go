// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"trackwise/internal/domain/entity"
)

// --- Input DTOs ---

// SocialLoginInput defines the data required to authenticate with a social
// identity provider. Exactly one of IDToken is always required; AccessToken
// and AuthorizationCode are accepted but unused by the current flow.
type SocialLoginInput struct {
	Provider          string
	IDToken           string
	AccessToken       string
	AuthorizationCode string

	// Nonce is the raw value the client generated before requesting the
	// token. Only meaningful for Apple, which echoes its SHA-256 back.
	Nonce string
}

// --- Output DTOs ---

// SocialLoginOutput returns the session credential and the resolved account.
type SocialLoginOutput struct {
	SessionToken string
	TokenType    string
	User         *entity.SanitizedUser
	IsNewUser    bool
}

// AuthUsecase defines the interface for social authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// SocialLogin verifies a provider-issued identity token, resolves it to
	// a local account (creating or linking one as needed) and issues a
	// session credential.
	SocialLogin(ctx context.Context, input *SocialLoginInput) (*SocialLoginOutput, error)
}
