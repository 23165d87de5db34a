package errors

import (
	"errors"
	"fmt"
)

// Common error types for the session client
var (
	// Credential errors
	ErrNoAccessToken      = errors.New("no access token")
	ErrNoRefreshToken     = errors.New("no refresh token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Request errors
	ErrRefreshRejected  = errors.New("refresh rejected")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMalformedToken   = errors.New("malformed token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
