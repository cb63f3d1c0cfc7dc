// Package usecase implements monthly budget management for the authenticated user.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/budget/domain"
)

// BudgetInput carries the caller-supplied fields of a budget. Nil fields are stored as
// absent.
type BudgetInput struct {
	PlannedIncome  *decimal.Decimal
	PlannedExpense *decimal.Decimal
	SavingsGoal    *decimal.Decimal
	Notes          *string
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	Upsert(ctx context.Context, b *domain.Budget) error
	GetByPeriod(ctx context.Context, userID uuid.UUID, period time.Time) (*domain.Budget, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Budget, error)
	Delete(ctx context.Context, userID uuid.UUID, period time.Time) error
}

// BudgetUseCase defines the interface for budget business logic.
type BudgetUseCase interface {
	// Upsert creates the budget of period or replaces the existing one.
	Upsert(ctx context.Context, userID uuid.UUID, period time.Time, input BudgetInput) (*domain.Budget, error)
	Get(ctx context.Context, userID uuid.UUID, period time.Time) (*domain.Budget, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Budget, error)
	Delete(ctx context.Context, userID uuid.UUID, period time.Time) error
}
