package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/database"
	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/user/domain"
)

type userUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
	keyIssuer KeyIssuer
	hasher    *pwdhash.PasswordHasher
}

// NewUserUseCase returns the user use case. Passwords are hashed with the pwdhash
// interactive policy.
func NewUserUseCase(txManager database.TxManager, userRepo UserRepository, keyIssuer KeyIssuer) (UserUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &userUseCase{txManager: txManager, userRepo: userRepo, keyIssuer: keyIssuer, hasher: hasher}, nil
}

// RegisterUser creates a user that already owns a wrapped data key: the row and the key
// are written by a single insert.
func (uc *userUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := uc.hasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	wrapped, err := uc.wrappedFreshKey()
	if err != nil {
		return nil, err
	}

	user := newUser(input, passwordHash, wrapped, time.Now().UTC())
	if err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.Create(ctx, user)
	}); err != nil {
		return nil, err
	}
	return user, nil
}

// wrappedFreshKey issues a data key and keeps only its wrapped form. The plaintext is
// unwrapped again on the user's first authenticated request.
func (uc *userUseCase) wrappedFreshKey() (string, error) {
	key, wrapped, err := uc.keyIssuer.IssueFreshKey()
	if err != nil {
		return "", err
	}
	key.Zero()
	return wrapped, nil
}

func newUser(input RegisterUserInput, passwordHash, wrappedKey string, now time.Time) *domain.User {
	return &domain.User{
		ID:             uuid.Must(uuid.NewV7()),
		Name:           strings.TrimSpace(input.Name),
		Email:          normalizeEmail(input.Email),
		Password:       passwordHash,
		WrappedDataKey: wrappedKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetUserByEmail looks the user up by its normalized email.
func (uc *userUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

// GetUserByID returns the user with id or ErrUserNotFound.
func (uc *userUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
