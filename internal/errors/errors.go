package errors

import (
	"errors"
	"fmt"
)

// Common error types for the expenses server
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidSession  = errors.New("invalid session")

	// Login flow errors
	ErrInvalidState  = errors.New("invalid state")
	ErrTokenExchange = errors.New("token exchange failed")
	ErrUserNotFound  = errors.New("user not found")

	// Spreadsheet errors
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrInvalidPeriod       = errors.New("invalid period")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
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

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
