// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	authUc usecase.AuthUsecase
	userUc usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUc usecase.AuthUsecase, userUc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUc: authUc,
		userUc: userUc,
		logger: logger,
	}
}

// socialLoginRequest is the wire format of the social login endpoint.
type socialLoginRequest struct {
	Provider          string `json:"provider" validate:"required,oneof=google apple"`
	IDToken           string `json:"id_token" validate:"required"`
	AccessToken       string `json:"access_token"`
	AuthorizationCode string `json:"authorization_code"`
	Nonce             string `json:"nonce"`
}

// registerRequest is the wire format of the password registration endpoint.
type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
}

// loginRequest is the wire format of the password login endpoint.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SocialLogin handles authentication with a provider-issued identity token.
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	var req socialLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid social login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUc.SocialLogin(c.Request().Context(), &usecase.SocialLoginInput{
		Provider:          req.Provider,
		IDToken:           req.IDToken,
		AccessToken:       req.AccessToken,
		AuthorizationCode: req.AuthorizationCode,
		Nonce:             req.Nonce,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Always 200, even on first sign-in: concurrent first logins for the
	// same identity must be indistinguishable to the clients.
	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.SessionToken,
		"token_type":   output.TokenType,
		"is_new_user":  output.IsNewUser,
		"user":         output.User,
	}, "Login successful")
}

// Register handles password-backed account registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.userUc.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles password login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.userUc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.SessionToken,
		"token_type":   output.TokenType,
		"user":         output.User,
	}, "Login successful")
}
