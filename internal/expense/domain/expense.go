// Package domain defines the expense record entity.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/errors"
)

// Expense is a single spending record of a user.
//
// Title, Description and Amount are stored encrypted with the owner's data key.
// Category, Period and ExpenseDate are structural and stay in plaintext.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	Title       string
	Description *string
	Amount      decimal.Decimal
	Period      time.Time
	ExpenseDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter narrows an expense listing.
type ListFilter struct {
	// Period, when set, restricts the listing to one month.
	Period *time.Time
	Offset int
	Limit  int
}

// MaxBatchSize bounds the number of expenses a single batch operation may touch.
const MaxBatchSize = 100

// Domain-specific errors for expense operations.
var (
	// ErrExpenseNotFound indicates the expense does not exist or belongs to another user.
	ErrExpenseNotFound = errors.Wrap(errors.ErrNotFound, "expense not found")

	// ErrTitleRequired indicates a blank title.
	ErrTitleRequired = errors.Wrap(errors.ErrInvalidInput, "title is required")

	// ErrCategoryRequired indicates a blank category.
	ErrCategoryRequired = errors.Wrap(errors.ErrInvalidInput, "category is required")

	// ErrAmountNotPositive indicates an amount of zero or less.
	ErrAmountNotPositive = errors.Wrap(errors.ErrInvalidInput, "amount must be greater than zero")

	// ErrEmptyBatch indicates a batch operation without any expense.
	ErrEmptyBatch = errors.Wrap(errors.ErrInvalidInput, "batch must contain at least one expense")

	// ErrBatchTooLarge indicates a batch operation over MaxBatchSize expenses.
	ErrBatchTooLarge = errors.Wrap(errors.ErrInvalidInput, "batch exceeds the maximum size")

	// ErrDuplicateBatchID indicates the same expense appears twice in a batch update.
	ErrDuplicateBatchID = errors.Wrap(errors.ErrInvalidInput, "expense appears more than once in batch")
)
