// Package usecase registers users and resolves them for authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/user/domain"
	appValidation "github.com/allisson/fintrack/internal/validation"
)

// RegisterUserInput is a registration request, from the API or the create-user command.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// Validate checks the input against the account rules.
func (i RegisterUserInput) Validate() error {
	return appValidation.WrapValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&i.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&i.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.UserPassword,
		),
	))
}

// UserUseCase is the user business logic.
type UserUseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// KeyIssuer issues a fresh data key together with its wrapped form.
type KeyIssuer interface {
	IssueFreshKey() (cryptoDomain.DataKey, string, error)
}
