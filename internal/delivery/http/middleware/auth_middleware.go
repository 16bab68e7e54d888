package middleware

import (
	"strings"

	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/delivery/http/response"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by the authentication middleware for handlers to use.
const (
	KeyCurrentUser = "currentUser"
)

// AuthMiddleware validates the bearer session credential and resolves the
// current account.
type AuthMiddleware struct {
	sessionIssuer service.SessionIssuer
	userUsecase   usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionIssuer service.SessionIssuer, userUsecase usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessionIssuer: sessionIssuer, userUsecase: userUsecase}
}

// Authenticate validates the session credential, loads the account it names
// and stores it on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_CREDENTIAL", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "Invalid token format, must be Bearer token")
		}

		email, err := m.sessionIssuer.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "Invalid or expired session")
		}

		ctx := deliverycontext.WithUserEmail(c.Request().Context(), email)
		c.SetRequest(c.Request().WithContext(ctx))

		user, err := m.userUsecase.GetByEmail(c.Request().Context(), email)
		if err != nil {
			return response.Unauthorized(c, "INVALID_CREDENTIAL", "Session subject no longer exists")
		}
		if !user.IsActive {
			return domainerrors.ErrInactiveUser
		}

		c.Set(KeyCurrentUser, user)

		return next(c)
	}
}

// RequireSuperuser restricts a route to administrative accounts. It must run
// after Authenticate.
func (m *AuthMiddleware) RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(KeyCurrentUser).(*entity.SanitizedUser)
		if !ok {
			return response.Unauthorized(c, "MISSING_CREDENTIAL", "Authentication required")
		}
		if !user.IsSuperuser {
			return domainerrors.ErrForbidden
		}

		return next(c)
	}
}
