// Package mocks provides testify mocks for the user use case.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/fintrack/internal/user/domain"
	"github.com/allisson/fintrack/internal/user/usecase"
)

// MockUserUseCase is a testify mock of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func userResult(args mock.Arguments) (*domain.User, error) {
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserUseCase) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
	return userResult(m.Called(ctx, input))
}

func (m *MockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *MockUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}
