package service

import (
	"errors"
	"fmt"
)

// Error taxonomy of the flows. Expected outcomes are returned wrapped around
// one of these sentinels; the HTTP layer maps them to status codes.
var (
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrAuthentication   = errors.New("invalid credentials")
	ErrNotFound         = errors.New("not found")
	ErrExpired          = errors.New("otp expired")
	ErrAttemptsExceeded = errors.New("otp attempts exceeded")
	ErrInvalidCode      = errors.New("invalid otp code")
	ErrDependency       = errors.New("dependency failure")
	ErrTooManyAttempts  = errors.New("too many login attempts")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// InvalidCodeError is returned when a wrong one-time code was submitted and
// the OTP still accepts further attempts.
type InvalidCodeError struct {
	AttemptsLeft int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("%s: %d attempts left", ErrInvalidCode, e.AttemptsLeft)
}

func (e *InvalidCodeError) Unwrap() error {
	return ErrInvalidCode
}

// dependency marks err as a storage or infrastructure failure.
func dependency(err error) error {
	return fmt.Errorf("%w: %w", ErrDependency, err)
}
