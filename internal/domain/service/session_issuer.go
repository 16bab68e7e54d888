package service

import (
	"time"

	"trackwise/internal/domain/entity"
)

// SessionIssuer mints the opaque, time-boxed session credential returned to
// clients after authentication. The subject is the user's email, so it must
// run strictly after the account row is committed.
type SessionIssuer interface {
	// Issue creates a signed session credential for the user.
	Issue(user *entity.User) (string, error)

	// Validate checks a session credential and returns its subject (the
	// user email). Used by the authentication middleware.
	Validate(token string) (subject string, err error)

	// TTL returns the configured session lifetime.
	TTL() time.Duration
}
