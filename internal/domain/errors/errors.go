// Package errors defines the application error taxonomy. Every error that
// crosses the usecase boundary is either one of the predefined AppErrors or
// wraps one, so the delivery layer can map it to an HTTP status without
// inspecting error strings.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Machine-readable error kind
	Message() string   // User-facing error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the machine-readable error kind.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors of the same kind, so copies created by WithDetails
// still compare equal to their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

var (
	// Social authentication errors. Everything the token verifiers and the
	// identity linker can surface maps to 401, except persistence failures.

	// ErrUnsupportedProvider is returned for a provider tag outside {google, apple}.
	ErrUnsupportedProvider = NewBaseError(
		http.StatusUnauthorized,
		"UNSUPPORTED_PROVIDER",
		"Unsupported identity provider",
		"",
	)

	// ErrInvalidToken covers bad signatures, expired tokens, malformed
	// tokens and tokens signed by a key absent from the provider's key set.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid identity token",
		"",
	)

	// ErrIssuerMismatch is returned when the token's issuer claim does not
	// belong to the expected provider.
	ErrIssuerMismatch = NewBaseError(
		http.StatusUnauthorized,
		"ISSUER_MISMATCH",
		"Identity token issued by an unexpected issuer",
		"",
	)

	// ErrAudienceMismatch is returned when audience checking is configured
	// and the token's audience does not match the client id.
	ErrAudienceMismatch = NewBaseError(
		http.StatusUnauthorized,
		"AUDIENCE_MISMATCH",
		"Identity token issued for a different audience",
		"",
	)

	// ErrProviderUnavailable is returned when the provider's key set cannot
	// be fetched. Retryable by the caller, never retried internally.
	ErrProviderUnavailable = NewBaseError(
		http.StatusUnauthorized,
		"PROVIDER_UNAVAILABLE",
		"Identity provider is unreachable",
		"",
	)

	// ErrLinkConflict signals that a concurrent request linked the same
	// identity first. Internal; the orchestrator retries resolution once.
	ErrLinkConflict = NewBaseError(
		http.StatusUnauthorized,
		"LINK_CONFLICT",
		"Concurrent account link conflict",
		"",
	)

	// User-related errors.

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"This email or username is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrInactiveUser = NewBaseError(
		http.StatusForbidden,
		"INACTIVE_USER",
		"This account is inactive",
		"",
	)

	// Saved-route errors.

	ErrRouteNotFound = NewBaseError(
		http.StatusNotFound,
		"ROUTE_NOT_FOUND",
		"Saved route not found",
		"",
	)

	ErrRouteOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"ROUTE_OWNERSHIP_VIOLATION",
		"You do not have access to this saved route",
		"",
	)

	// Upstream data errors.

	ErrUpstreamUnavailable = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_UNAVAILABLE",
		"Upstream data source is unreachable",
		"",
	)

	// Validation-related errors.

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors.

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a non-retryable persistence failure,
// implementing the AppError interface. It always maps to HTTP 500.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the machine-readable error kind.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message.
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
