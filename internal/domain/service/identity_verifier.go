// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"trackwise/internal/domain/entity"
)

// IdentityVerifier validates a raw provider-issued identity token and
// extracts a normalized identity record. Implemented once per provider;
// failures surface as the typed errors in domain/errors and never yield a
// partial identity.
type IdentityVerifier interface {
	// Verify checks the token's signature, issuer, audience and expiry.
	// The nonce is only meaningful for providers that echo it back in the
	// token (Apple); other implementations ignore it.
	Verify(ctx context.Context, rawToken string, nonce string) (*entity.ProviderIdentity, error)

	// Provider returns the provider this verifier handles.
	Provider() entity.ProviderType
}
