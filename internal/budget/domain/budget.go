// Package domain defines the monthly budget entity.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/errors"
)

// Budget is the plan of a user for one month. A user has at most one budget per period.
//
// The amounts and Notes are stored encrypted with the owner's data key; any of them may
// be absent.
type Budget struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Period         time.Time
	PlannedIncome  *decimal.Decimal
	PlannedExpense *decimal.Decimal
	SavingsGoal    *decimal.Decimal
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Domain-specific errors for budget operations.
var (
	// ErrBudgetNotFound indicates there is no budget for the requested period.
	ErrBudgetNotFound = errors.Wrap(errors.ErrNotFound, "budget not found")

	// ErrNegativeAmount indicates a planned amount below zero.
	ErrNegativeAmount = errors.Wrap(errors.ErrInvalidInput, "budget amounts must not be negative")
)
