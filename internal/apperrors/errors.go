package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors used as error kinds across the application.
// Services wrap these with fmt.Errorf("%w: ...") so callers can branch
// with errors.Is while still getting a human-readable message.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrForbidden indicates that the caller does not own the resource it is acting on.
	ErrForbidden = errors.New("forbidden")

	// ErrRateUnavailable indicates that no exchange rate could be resolved by any
	// step of the resolution policy (manual rate, cache, external provider).
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrHasChildren indicates a category cannot be deleted while child categories exist.
	ErrHasChildren = errors.New("category has child categories")

	// ErrCategoryInUse indicates a category cannot be deleted while transactions reference it.
	ErrCategoryInUse = errors.New("category is referenced by transactions")
)

// AppError carries an HTTP-ish status code alongside a message and an optional cause.
// Repositories use it for infrastructure failures that have no domain meaning.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError with the given code and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
