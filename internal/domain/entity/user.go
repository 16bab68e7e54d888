// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. A user may carry a password credential,
// one or more linked social identities, or both; the uniqueness of email,
// username and the per-provider ids is enforced by the database.
type User struct {
	ID            uuid.UUID // The unique identifier for the account.
	Email         string    // Primary contact email, unique, used as the session subject.
	Username      string    // Display handle, globally unique.
	PasswordHash  string    // Bcrypt hash; empty for accounts created through a social provider.
	FullName      string    // Optional display name, filled from provider claims when empty.
	AvatarURL     string    // Optional avatar, filled from provider claims when empty.
	GoogleID      string    // Google 'sub' claim when a Google identity is linked; empty otherwise.
	AppleID       string    // Apple 'sub' claim when an Apple identity is linked; empty otherwise.
	AuthProvider  string    // The provider that created or most recently linked this account.
	EmailVerified bool      // Set once any provider asserts the email as verified.
	IsActive      bool      // Inactive accounts cannot authenticate.
	IsSuperuser   bool      // Administrative flag, never set by the social auth flow.
	CreatedAt     time.Time // Timestamp of account creation.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// SanitizedUser is the API-safe representation of a user.
// The password hash is never serialized.
type SanitizedUser struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	AuthProvider  string    `json:"auth_provider,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	IsSuperuser   bool      `json:"is_superuser"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Sanitize maps a user to its API-safe representation.
func (u *User) Sanitize() *SanitizedUser {
	if u == nil {
		return nil
	}

	return &SanitizedUser{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		AuthProvider:  u.AuthProvider,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		IsSuperuser:   u.IsSuperuser,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
