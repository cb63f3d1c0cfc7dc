// Package errors defines the error kinds that cross layer boundaries. Repositories and
// services wrap one of these sentinels; HTTP handlers pick the status code from the kind
// alone, so the wrapped message never decides what a client sees.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrNotFound: the resource does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrConflict: the write collides with existing data, such as a duplicate email.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput: the input breaks a validation rule or a configuration value is
	// unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized: missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")

	// ErrInternal: a server-side failure, crypto failures included. Details stay in logs.
	ErrInternal = errors.New("internal error")
)

// Wrap prefixes err with message and keeps it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
