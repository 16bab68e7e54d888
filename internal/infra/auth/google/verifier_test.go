package google

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/api/idtoken"
)

func newTestVerifier(validate validateFunc) *verifier {
	return &verifier{
		clientID: "test-client-id",
		validate: validate,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestVerifier_Provider(t *testing.T) {
	v := newTestVerifier(nil)

	assert.Equal(t, entity.ProviderTypeGoogle, v.Provider())
}

func TestVerifier_Verify_Success(t *testing.T) {
	v := newTestVerifier(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "raw-token", token)
		assert.Equal(t, "test-client-id", audience)

		return &idtoken.Payload{
			Issuer:  "https://accounts.google.com",
			Subject: "google-sub-123",
			Claims: map[string]any{
				"email":          "alice@example.com",
				"email_verified": true,
				"name":           "Alice Example",
				"picture":        "https://example.com/alice.png",
			},
		}, nil
	})

	identity, err := v.Verify(context.Background(), "raw-token", "")
	require.NoError(t, err)

	assert.Equal(t, entity.ProviderTypeGoogle, identity.Provider)
	assert.Equal(t, "google-sub-123", identity.ProviderUserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Alice Example", identity.FullName)
	assert.Equal(t, "https://example.com/alice.png", identity.AvatarURL)
}

func TestVerifier_Verify_StringEmailVerifiedClaim(t *testing.T) {
	v := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "accounts.google.com",
			Subject: "google-sub-123",
			Claims: map[string]any{
				"email":          "alice@example.com",
				"email_verified": "true",
			},
		}, nil
	})

	identity, err := v.Verify(context.Background(), "raw-token", "")
	require.NoError(t, err)

	assert.True(t, identity.EmailVerified)
}

func TestVerifier_Verify_ValidationFailure(t *testing.T) {
	v := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("signature mismatch")
	})

	identity, err := v.Verify(context.Background(), "raw-token", "")
	require.Error(t, err)

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_IssuerMismatch(t *testing.T) {
	v := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "https://evil.example.com",
			Subject: "google-sub-123",
			Claims:  map[string]any{},
		}, nil
	})

	identity, err := v.Verify(context.Background(), "raw-token", "")
	require.Error(t, err)

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domainerrors.ErrIssuerMismatch))
}

func TestVerifier_Verify_MissingSubject(t *testing.T) {
	v := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer: "https://accounts.google.com",
			Claims: map[string]any{"email": "alice@example.com"},
		}, nil
	})

	identity, err := v.Verify(context.Background(), "raw-token", "")
	require.Error(t, err)

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_NonceIgnored(t *testing.T) {
	v := newTestVerifier(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "https://accounts.google.com",
			Subject: "google-sub-123",
			Claims:  map[string]any{},
		}, nil
	})

	_, err := v.Verify(context.Background(), "raw-token", "some-nonce-google-never-echoes")
	require.NoError(t, err)
}
