// Package http provides the authentication, unit-of-work and rate limiting middleware of
// the API.
package http

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/fintrack/internal/errors"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok && user != nil
}

// UserID returns the ID of the authenticated user, or ErrUnauthorized when the request
// was not authenticated.
func UserID(ctx context.Context) (uuid.UUID, error) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return user.ID, nil
}
