// Package mocks provides testify mocks for the budget use case.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/budget/usecase"
)

// MockBudgetUseCase is a mock implementation of usecase.BudgetUseCase.
type MockBudgetUseCase struct {
	mock.Mock
}

var _ usecase.BudgetUseCase = (*MockBudgetUseCase)(nil)

func (m *MockBudgetUseCase) Upsert(
	ctx context.Context,
	userID uuid.UUID,
	period time.Time,
	input usecase.BudgetInput,
) (*domain.Budget, error) {
	args := m.Called(ctx, userID, period, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetUseCase) Get(ctx context.Context, userID uuid.UUID, period time.Time) (*domain.Budget, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Budget, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}

func (m *MockBudgetUseCase) Delete(ctx context.Context, userID uuid.UUID, period time.Time) error {
	return m.Called(ctx, userID, period).Error(0)
}
