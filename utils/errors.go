// utils/errors.go
package utils

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both missing entities and entities the caller may not
	// see. The two are reported identically so existence does not leak.
	ErrNotFound = errors.New("not found")
	// ErrNotAvailable is a business-rule violation.
	ErrNotAvailable = errors.New("not available")
	// ErrValidation is a malformed request.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned by storage when a conditional write lost a race.
	ErrConflict = errors.New("conflicting update")

	ErrUserIDNotFound = errors.New("X-Sharer-User-Id header is required")
)

// AppError carries a caller-facing message on top of one of the sentinels.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NotFoundf(format string, args ...any) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotAvailablef(format string, args ...any) error {
	return &AppError{Kind: ErrNotAvailable, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &AppError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}
