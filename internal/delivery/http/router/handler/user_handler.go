package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/middleware"
	"trackwise/internal/delivery/http/response"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account handlers.
type UserHandler struct {
	userUc usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUc: userUc,
		logger: logger,
	}
}

// updateProfileRequest is the wire format of the profile update endpoint.
// Absent fields are left unchanged.
type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
}

// currentUser extracts the account resolved by the authentication middleware.
func currentUser(c echo.Context) (*entity.SanitizedUser, error) {
	user, ok := c.Get(middleware.KeyCurrentUser).(*entity.SanitizedUser)
	if !ok || user == nil {
		return nil, domainerrors.ErrInternalError.WithDetails("authenticated user missing from request context")
	}

	return user, nil
}

// GetProfile returns the authenticated user's account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user, "")
}

// UpdateProfile applies partial profile changes to the authenticated account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.userUc.UpdateProfile(c.Request().Context(), user.Email, &usecase.UpdateProfileInput{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Username:  req.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated, "Profile updated successfully")
}
