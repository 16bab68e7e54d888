// Package apple verifies Sign in with Apple identity tokens against Apple's
// published signing keys.
package apple

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"trackwise/config"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/service"

	"github.com/pkg/errors"
)

// DefaultKeysURL is Apple's JWKS endpoint.
const DefaultKeysURL = "https://appleid.apple.com/auth/keys"

// keySource fetches Apple's signing keys on every call. The HTTP client is
// constructed at process start and injected; it must carry a timeout.
type keySource struct {
	client  *http.Client
	keysURL string
	logger  *slog.Logger
}

// NewKeySource constructs the Apple JWKS key source.
func NewKeySource(client *http.Client, cfg *config.Config, logger *slog.Logger) service.KeySource {
	keysURL := DefaultKeysURL
	if cfg.AppleOAuth != nil && cfg.AppleOAuth.KeysURL != "" {
		keysURL = cfg.AppleOAuth.KeysURL
	}

	return &keySource{
		client:  client,
		keysURL: keysURL,
		logger:  logger,
	}
}

// jwksDocument mirrors the wire format of Apple's key set.
type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Alg string `json:"alg"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

// FetchKeys retrieves the current key set. Any network failure or
// non-success response surfaces as ErrProviderUnavailable; the caller
// decides whether to retry the whole authentication.
func (s *keySource) FetchKeys(ctx context.Context) ([]service.SigningKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.keysURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build apple keys request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Apple key set fetch failed", slog.Any("error", err))

		return nil, domainerrors.ErrProviderUnavailable.WrapMessage("apple key set fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Apple key set fetch returned non-success status", slog.Int("status", resp.StatusCode))

		return nil, domainerrors.ErrProviderUnavailable.WrapMessage("apple key set fetch returned non-success status")
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, domainerrors.ErrProviderUnavailable.WrapMessage("failed to decode apple key set")
	}

	keys := make([]service.SigningKey, 0, len(doc.Keys))
	for _, k := range doc.Keys {
		keys = append(keys, service.SigningKey{
			Kid:       k.Kid,
			Algorithm: k.Alg,
			Modulus:   k.N,
			Exponent:  k.E,
		})
	}

	return keys, nil
}
