// Package mocks provides testify mocks for the expense use case.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/expense/usecase"
)

// MockExpenseUseCase is a mock implementation of usecase.ExpenseUseCase.
type MockExpenseUseCase struct {
	mock.Mock
}

var _ usecase.ExpenseUseCase = (*MockExpenseUseCase)(nil)

func (m *MockExpenseUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input usecase.ExpenseInput,
) (*domain.Expense, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseUseCase) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]*domain.Expense, error) {
	return expensesResult(m.Called(ctx, userID, filter))
}

func (m *MockExpenseUseCase) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input usecase.ExpenseInput,
) (*domain.Expense, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseUseCase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockExpenseUseCase) CreateBatch(
	ctx context.Context,
	userID uuid.UUID,
	defaultPeriod string,
	inputs []usecase.ExpenseInput,
) ([]*domain.Expense, error) {
	return expensesResult(m.Called(ctx, userID, defaultPeriod, inputs))
}

func (m *MockExpenseUseCase) UpdateBatch(
	ctx context.Context,
	userID uuid.UUID,
	updates []usecase.ExpenseUpdate,
) ([]*domain.Expense, error) {
	return expensesResult(m.Called(ctx, userID, updates))
}

func (m *MockExpenseUseCase) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, userID, ids).Error(0)
}

func expensesResult(args mock.Arguments) ([]*domain.Expense, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Expense), args.Error(1)
}
