// Package entity contains the core business objects of the project.
package entity

// ProviderType represents a supported social identity provider.
type ProviderType string

const (
	// ProviderTypeGoogle indicates a Google Sign-In identity.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeApple indicates a Sign in with Apple identity.
	ProviderTypeApple ProviderType = "apple"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the ProviderType is a valid value.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderTypeGoogle, ProviderTypeApple:
		return true
	default:
		return false
	}
}

// ProviderIdentity is the normalized result of verifying a provider-issued
// identity token. It lives only for the duration of one authentication flow.
// ProviderUserID is unique within its provider, not globally.
type ProviderIdentity struct {
	Provider       ProviderType // Which provider asserted this identity.
	ProviderUserID string       // The provider's 'sub' claim; never empty on success.
	Email          string       // May be empty (Apple private relay users can withhold it).
	EmailVerified  bool         // Whether the provider asserts the email as verified.
	FullName       string       // Display name; Google only, Apple never supplies it after first consent.
	AvatarURL      string       // Profile picture; Google only.
}
