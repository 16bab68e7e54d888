// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const defaultSessionTTL = 30 * time.Minute

// jwtSessionIssuer mints HS256-signed session credentials. The subject is
// the user's email, so issuance must follow the account commit.
type jwtSessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionIssuer is the constructor for jwtSessionIssuer.
func NewSessionIssuer(cfg *config.Config) (service.SessionIssuer, error) {
	if cfg.Session == nil || cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &jwtSessionIssuer{
		secret: []byte(cfg.Session.Secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed session credential for the user.
func (s *jwtSessionIssuer) Issue(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session credential")
	}

	return signed, nil
}

// Validate checks a session credential and returns its subject.
func (s *jwtSessionIssuer) Validate(tokenString string) (string, error) {
	claims := new(jwt.RegisteredClaims)

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "invalid session credential")
	}
	if claims.Subject == "" {
		return "", errors.New("session credential missing subject")
	}

	return claims.Subject, nil
}

// TTL returns the configured session lifetime.
func (s *jwtSessionIssuer) TTL() time.Duration {
	return s.ttl
}
