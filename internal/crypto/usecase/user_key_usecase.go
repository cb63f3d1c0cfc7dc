package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

// provisionConcurrency bounds the number of users provisioned in parallel.
const provisionConcurrency = 8

type userKeyUseCase struct {
	repo       UserKeyRepository
	keyService KeyService
}

// NewUserKeyUseCase creates a UserKeyUseCase.
func NewUserKeyUseCase(repo UserKeyRepository, keyService KeyService) UserKeyUseCase {
	return &userKeyUseCase{
		repo:       repo,
		keyService: keyService,
	}
}

func (u *userKeyUseCase) EnsureKey(ctx context.Context, user *userDomain.User) (cryptoDomain.DataKey, error) {
	if cached := user.CachedDataKey(); cached != nil {
		return cached.Clone(), nil
	}

	if user.HasWrappedDataKey() {
		key, err := u.keyService.Unwrap(user.WrappedDataKey)
		if err != nil {
			return nil, err
		}
		return user.CacheDataKey(key).Clone(), nil
	}

	key, wrapped, err := u.keyService.IssueFreshKey()
	if err != nil {
		return nil, err
	}

	stored, err := u.repo.SetWrappedDataKeyIfAbsent(ctx, user.ID, wrapped)
	if err != nil {
		key.Zero()
		return nil, err
	}

	if !stored {
		// Another unit of work provisioned this user first; its key is the one on disk.
		key.Zero()

		wrapped, err = u.repo.GetWrappedDataKey(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if wrapped == "" {
			return nil, fmt.Errorf("%w: wrapped data key vanished for user %s", cryptoDomain.ErrKeyUnwrapFailure, user.ID)
		}

		key, err = u.keyService.Unwrap(wrapped)
		if err != nil {
			return nil, err
		}
	}

	return user.CacheDataKey(key).Clone(), nil
}

func (u *userKeyUseCase) ProvisionMissingKeys(ctx context.Context, batchSize int) (int, error) {
	users, err := u.repo.ListWithoutDataKey(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(provisionConcurrency)

	for _, user := range users {
		g.Go(func() error {
			key, err := u.EnsureKey(gctx, user)
			if err != nil {
				return fmt.Errorf("failed to provision data key for user %s: %w", user.ID, err)
			}
			key.Zero()
			user.ForgetDataKey()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(users), nil
}
