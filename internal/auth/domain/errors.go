// Package domain defines the authentication errors shared by the token verifier and the
// HTTP middleware.
package domain

import (
	"github.com/allisson/fintrack/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidToken indicates a bearer token that is malformed, badly signed, expired or
	// missing its subject.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrTokenSecretTooShort indicates a JWT signing secret shorter than MinSecretLength.
	ErrTokenSecretTooShort = errors.Wrap(errors.ErrInvalidInput, "jwt secret must be at least 32 bytes")
)

// MinSecretLength is the minimum accepted HS256 secret length in bytes.
const MinSecretLength = 32
