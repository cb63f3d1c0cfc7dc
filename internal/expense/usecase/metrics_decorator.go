package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/metrics"
)

// expenseUseCaseWithMetrics decorates ExpenseUseCase with metrics instrumentation.
type expenseUseCaseWithMetrics struct {
	next    ExpenseUseCase
	metrics metrics.BusinessMetrics
}

// NewExpenseUseCaseWithMetrics wraps an ExpenseUseCase with metrics recording.
func NewExpenseUseCaseWithMetrics(useCase ExpenseUseCase, m metrics.BusinessMetrics) ExpenseUseCase {
	return &expenseUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *expenseUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, e.metrics, "expense", operation, start, err)
}

// Create records metrics for expense creation.
func (e *expenseUseCaseWithMetrics) Create(
	ctx context.Context,
	userID uuid.UUID,
	input ExpenseInput,
) (*domain.Expense, error) {
	start := time.Now()
	expense, err := e.next.Create(ctx, userID, input)
	e.record(ctx, "expense_create", start, err)
	return expense, err
}

// Get records metrics for expense retrieval.
func (e *expenseUseCaseWithMetrics) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	start := time.Now()
	expense, err := e.next.Get(ctx, userID, id)
	e.record(ctx, "expense_get", start, err)
	return expense, err
}

// List records metrics for expense listing.
func (e *expenseUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]*domain.Expense, error) {
	start := time.Now()
	expenses, err := e.next.List(ctx, userID, filter)
	e.record(ctx, "expense_list", start, err)
	return expenses, err
}

// Update records metrics for expense updates.
func (e *expenseUseCaseWithMetrics) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input ExpenseInput,
) (*domain.Expense, error) {
	start := time.Now()
	expense, err := e.next.Update(ctx, userID, id, input)
	e.record(ctx, "expense_update", start, err)
	return expense, err
}

// Delete records metrics for expense deletion.
func (e *expenseUseCaseWithMetrics) Delete(ctx context.Context, userID, id uuid.UUID) error {
	start := time.Now()
	err := e.next.Delete(ctx, userID, id)
	e.record(ctx, "expense_delete", start, err)
	return err
}

// CreateBatch records metrics for batch creation.
func (e *expenseUseCaseWithMetrics) CreateBatch(
	ctx context.Context,
	userID uuid.UUID,
	defaultPeriod string,
	inputs []ExpenseInput,
) ([]*domain.Expense, error) {
	start := time.Now()
	expenses, err := e.next.CreateBatch(ctx, userID, defaultPeriod, inputs)
	e.record(ctx, "expense_create_batch", start, err)
	return expenses, err
}

// UpdateBatch records metrics for batch updates.
func (e *expenseUseCaseWithMetrics) UpdateBatch(
	ctx context.Context,
	userID uuid.UUID,
	updates []ExpenseUpdate,
) ([]*domain.Expense, error) {
	start := time.Now()
	expenses, err := e.next.UpdateBatch(ctx, userID, updates)
	e.record(ctx, "expense_update_batch", start, err)
	return expenses, err
}

// DeleteBatch records metrics for batch deletion.
func (e *expenseUseCaseWithMetrics) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	start := time.Now()
	err := e.next.DeleteBatch(ctx, userID, ids)
	e.record(ctx, "expense_delete_batch", start, err)
	return err
}
