// Package domain defines the core user domain entities and types.
package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/errors"
)

// User represents a user in the system.
//
// WrappedDataKey holds the user's data key sealed under the master key; it is empty for
// users created before encryption was enabled. The unwrapped key is cached on the
// in-memory object only and is written at most once.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Password       string
	WrappedDataKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	dataKey atomic.Pointer[cryptoDomain.DataKey]
}

// HasWrappedDataKey reports whether a wrapped data key is stored for the user.
func (u *User) HasWrappedDataKey() bool {
	return u.WrappedDataKey != ""
}

// CachedDataKey returns the cached unwrapped data key, or nil when none is cached.
// The returned slice is shared; callers that hand it out must copy it.
func (u *User) CachedDataKey() cryptoDomain.DataKey {
	if p := u.dataKey.Load(); p != nil {
		return *p
	}
	return nil
}

// CacheDataKey stores key as the cached data key unless one is already cached.
//
// It returns the key that ends up cached. When another goroutine won, key is zeroed
// and the winner's key is returned, so concurrent unwraps on the same user converge
// on a single cached value.
func (u *User) CacheDataKey(key cryptoDomain.DataKey) cryptoDomain.DataKey {
	for {
		if u.dataKey.CompareAndSwap(nil, &key) {
			return key
		}
		// The winner may have been forgotten between the swap and the load.
		if p := u.dataKey.Load(); p != nil {
			key.Zero()
			return *p
		}
	}
}

// ForgetDataKey zeroes and drops the cached data key.
func (u *User) ForgetDataKey() {
	if p := u.dataKey.Swap(nil); p != nil {
		p.Zero()
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.Wrap(errors.ErrInvalidInput, "invalid email format")

	// ErrInvalidPassword indicates the password doesn't meet requirements.
	ErrInvalidPassword = errors.Wrap(errors.ErrInvalidInput, "invalid password")

	// ErrNameRequired indicates the name field is required.
	ErrNameRequired = errors.Wrap(errors.ErrInvalidInput, "name is required")

	// ErrEmailRequired indicates the email field is required.
	ErrEmailRequired = errors.Wrap(errors.ErrInvalidInput, "email is required")

	// ErrPasswordRequired indicates the password field is required.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password is required")
)
