package apple

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKid = "test-key-1"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newJWKSServer serves a JWKS document exposing the given RSA public keys.
func newJWKSServer(t *testing.T, keys map[string]*rsa.PublicKey) *httptest.Server {
	t.Helper()

	entries := make([]map[string]string, 0, len(keys))
	for kid, pub := range keys {
		entries = append(entries, map[string]string{
			"kid": kid,
			"alg": "RS256",
			"kty": "RSA",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	doc := map[string]any{"keys": entries}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)

	return server
}

func newTestVerifier(t *testing.T, keysURL, clientID string) service.IdentityVerifier {
	t.Helper()

	cfg := &config.Config{
		AppleOAuth: &config.AppleOAuthConfig{
			ClientID: clientID,
			KeysURL:  keysURL,
		},
	}
	client := &http.Client{Timeout: 5 * time.Second}

	return NewVerifier(cfg, NewKeySource(client, cfg, testLogger), testLogger)
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	require.NoError(t, err)

	return signed
}

func defaultClaims() jwt.MapClaims {
	now := time.Now()

	return jwt.MapClaims{
		"iss":            appleIssuer,
		"aud":            "com.example.trackwise",
		"sub":            "apple-sub-000123",
		"email":          "bob@example.com",
		"email_verified": "true",
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
	}
}

func TestVerifier_Provider(t *testing.T) {
	v := newTestVerifier(t, "http://unused.invalid", "")

	assert.Equal(t, entity.ProviderTypeApple, v.Provider())
}

func TestVerifier_Verify_Success(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	v := newTestVerifier(t, server.URL, "com.example.trackwise")
	rawToken := signToken(t, key, testKid, defaultClaims())

	identity, err := v.Verify(context.Background(), rawToken, "")
	require.NoError(t, err)

	assert.Equal(t, entity.ProviderTypeApple, identity.Provider)
	assert.Equal(t, "apple-sub-000123", identity.ProviderUserID)
	assert.Equal(t, "bob@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Empty(t, identity.FullName)
	assert.Empty(t, identity.AvatarURL)
}

func TestVerifier_Verify_BooleanEmailVerifiedClaim(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["email_verified"] = true

	v := newTestVerifier(t, server.URL, "")
	identity, err := v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.NoError(t, err)

	assert.True(t, identity.EmailVerified)
}

func TestVerifier_Verify_UnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	v := newTestVerifier(t, server.URL, "")
	rawToken := signToken(t, key, "some-other-kid", defaultClaims())

	_, err = v.Verify(context.Background(), rawToken, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_WrongSigningKey(t *testing.T) {
	servedKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signingKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &servedKey.PublicKey})

	v := newTestVerifier(t, server.URL, "")
	rawToken := signToken(t, signingKey, testKid, defaultClaims())

	_, err = v.Verify(context.Background(), rawToken, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_ExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_IssuerMismatch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["iss"] = "https://evil.example.com"

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIssuerMismatch))
}

func TestVerifier_Verify_AudienceMismatch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["aud"] = "com.other.app"

	v := newTestVerifier(t, server.URL, "com.example.trackwise")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAudienceMismatch))
}

func TestVerifier_Verify_AudienceSkippedWhenUnconfigured(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["aud"] = "com.other.app"

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.NoError(t, err)
}

func TestVerifier_Verify_NonceMatch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	rawNonce := "client-generated-nonce"
	sum := sha256.Sum256([]byte(rawNonce))

	claims := defaultClaims()
	claims["nonce"] = hex.EncodeToString(sum[:])

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), rawNonce)
	require.NoError(t, err)
}

func TestVerifier_Verify_NonceMismatchStillSucceeds(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	claims["nonce"] = "not-the-hash-of-anything"

	v := newTestVerifier(t, server.URL, "")
	identity, err := v.Verify(context.Background(), signToken(t, key, testKid, claims), "client-generated-nonce")
	require.NoError(t, err)
	assert.Equal(t, "apple-sub-000123", identity.ProviderUserID)
}

func TestVerifier_Verify_MissingSubject(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	claims := defaultClaims()
	delete(claims, "sub")

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, claims), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestVerifier_Verify_MalformedToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	v := newTestVerifier(t, server.URL, "")
	_, err = v.Verify(context.Background(), "not-a-jwt", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestKeySource_FetchKeys_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	v := newTestVerifier(t, server.URL, "")
	_, err := v.Verify(context.Background(), "irrelevant", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProviderUnavailable))
}

func TestKeySource_FetchKeys_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	v := newTestVerifier(t, server.URL, "")
	_, err := v.Verify(context.Background(), "irrelevant", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProviderUnavailable))
}
