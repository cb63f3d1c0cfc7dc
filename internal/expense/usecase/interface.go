// Package usecase implements expense record management for the authenticated user.
// Every operation is scoped to a user ID and must run inside that user's Key Context,
// since the repositories encrypt and decrypt the sensitive columns.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/expense/domain"
)

// ExpenseInput carries the caller-supplied fields of an expense.
type ExpenseInput struct {
	Category    string
	Title       string
	Description *string
	Amount      decimal.Decimal
	// Period is "yyyy-MM". When empty it is derived from ExpenseDate, then from the
	// current month.
	Period      string
	ExpenseDate *time.Time
}

// ExpenseUpdate pairs an existing expense with its replacement fields.
type ExpenseUpdate struct {
	ID    uuid.UUID
	Input ExpenseInput
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExpenseUseCase defines the interface for expense business logic.
type ExpenseUseCase interface {
	Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ListFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, userID, id uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// CreateBatch stores every input in one transaction. defaultPeriod applies to inputs
	// that carry neither a period nor an expense date.
	CreateBatch(
		ctx context.Context,
		userID uuid.UUID,
		defaultPeriod string,
		inputs []ExpenseInput,
	) ([]*domain.Expense, error)
	// UpdateBatch replaces the listed expenses in one transaction. Any missing expense
	// aborts the whole batch.
	UpdateBatch(ctx context.Context, userID uuid.UUID, updates []ExpenseUpdate) ([]*domain.Expense, error)
	// DeleteBatch removes the listed expenses in one transaction. Repeated IDs are
	// deleted once; any missing expense aborts the whole batch.
	DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
}
