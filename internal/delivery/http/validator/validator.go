// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound request payloads.
package validator

import (
	domainerrors "trackwise/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps the validator instance used by the echo server.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Validation failures surface as the
// application's validation error so the error handler maps them to 400.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
