package service

import "context"

// SigningKey is one entry of a provider's published key set (JWKS). Keys are
// used only during a single verification call and never persisted.
type SigningKey struct {
	Kid       string // Key identifier matched against the token header.
	Algorithm string // Signing algorithm, e.g. "RS256".
	Modulus   string // RSA modulus, base64url without padding.
	Exponent  string // RSA public exponent, base64url without padding.
}

// KeySource fetches a provider's current signing-key set over the network.
// Stateless per call: every verification fetches a fresh set.
type KeySource interface {
	// FetchKeys retrieves the provider's JWKS. Network failures and
	// non-success responses surface as ErrProviderUnavailable.
	FetchKeys(ctx context.Context) ([]SigningKey, error)
}
