// Package usecase orchestrates per-user data keys: resolving a user's key for a unit of
// work, issuing and persisting keys on first use, and backfilling users created before
// encryption was enabled.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

// UserKeyRepository persists wrapped data keys on the user record.
//
// Implementations support transaction context through database.GetTx.
type UserKeyRepository interface {
	// SetWrappedDataKeyIfAbsent stores wrapped only if no key is stored yet and reports
	// whether this call stored it. A false result means another unit of work won.
	SetWrappedDataKeyIfAbsent(ctx context.Context, id uuid.UUID, wrapped string) (bool, error)

	// GetWrappedDataKey returns the stored wrapped key, or "" when none is stored.
	GetWrappedDataKey(ctx context.Context, id uuid.UUID) (string, error)

	// ListWithoutDataKey returns up to limit users with no wrapped key.
	ListWithoutDataKey(ctx context.Context, limit int) ([]*userDomain.User, error)
}

// KeyService issues and unwraps data keys under the master key. Implemented by
// service.UserKeyService.
type KeyService interface {
	IssueFreshKey() (cryptoDomain.DataKey, string, error)
	Unwrap(wrapped string) (cryptoDomain.DataKey, error)
}

// UserKeyUseCase resolves the unwrapped data key of a user.
type UserKeyUseCase interface {
	// EnsureKey returns the user's data key, issuing and persisting one when the user has
	// none. The unwrapped key is cached on the user object, so repeated calls for the same
	// object never unwrap twice.
	//
	// The returned key is a private copy; the caller zeroes it when done.
	EnsureKey(ctx context.Context, user *userDomain.User) (cryptoDomain.DataKey, error)

	// ProvisionMissingKeys issues keys for up to batchSize users that have none and
	// returns how many users were processed.
	ProvisionMissingKeys(ctx context.Context, batchSize int) (int, error)
}
