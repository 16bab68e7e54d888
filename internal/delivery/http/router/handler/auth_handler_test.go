package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trackwise/internal/delivery/http/validator"
	"trackwise/internal/domain/entity"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubAuthUsecase returns a canned social login result.
type stubAuthUsecase struct {
	output *usecase.SocialLoginOutput
	err    error
}

func (s *stubAuthUsecase) SocialLogin(_ context.Context, _ *usecase.SocialLoginInput) (*usecase.SocialLoginOutput, error) {
	return s.output, s.err
}

func performSocialLogin(t *testing.T, authUc usecase.AuthUsecase, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/social/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(authUc, nil, testLogger)
	require.NoError(t, h.SocialLogin(c))

	return rec
}

func TestAuthHandler_SocialLoginNewUserReturnsOK(t *testing.T) {
	authUc := &stubAuthUsecase{output: &usecase.SocialLoginOutput{
		SessionToken: "token",
		TokenType:    "bearer",
		User:         &entity.SanitizedUser{Email: "alice@example.com"},
		IsNewUser:    true,
	}}

	rec := performSocialLogin(t, authUc, `{"provider":"google","id_token":"raw-token"}`)

	// First sign-in must not be distinguishable by status code: two
	// concurrent first logins both get 200.
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			IsNewUser bool `json:"is_new_user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.IsNewUser)
}

func TestAuthHandler_SocialLoginExistingUserReturnsOK(t *testing.T) {
	authUc := &stubAuthUsecase{output: &usecase.SocialLoginOutput{
		SessionToken: "token",
		TokenType:    "bearer",
		User:         &entity.SanitizedUser{Email: "alice@example.com"},
		IsNewUser:    false,
	}}

	rec := performSocialLogin(t, authUc, `{"provider":"google","id_token":"raw-token"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}
