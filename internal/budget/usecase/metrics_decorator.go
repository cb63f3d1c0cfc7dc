package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/metrics"
)

// budgetUseCaseWithMetrics decorates BudgetUseCase with metrics instrumentation.
type budgetUseCaseWithMetrics struct {
	next    BudgetUseCase
	metrics metrics.BusinessMetrics
}

// NewBudgetUseCaseWithMetrics wraps a BudgetUseCase with metrics recording.
func NewBudgetUseCaseWithMetrics(useCase BudgetUseCase, m metrics.BusinessMetrics) BudgetUseCase {
	return &budgetUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *budgetUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, b.metrics, "budget", operation, start, err)
}

// Upsert records metrics for budget writes.
func (b *budgetUseCaseWithMetrics) Upsert(
	ctx context.Context,
	userID uuid.UUID,
	period time.Time,
	input BudgetInput,
) (*domain.Budget, error) {
	start := time.Now()
	budget, err := b.next.Upsert(ctx, userID, period, input)
	b.record(ctx, "budget_upsert", start, err)
	return budget, err
}

// Get records metrics for budget retrieval.
func (b *budgetUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID, period time.Time) (*domain.Budget, error) {
	start := time.Now()
	budget, err := b.next.Get(ctx, userID, period)
	b.record(ctx, "budget_get", start, err)
	return budget, err
}

// List records metrics for budget listing.
func (b *budgetUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Budget, error) {
	start := time.Now()
	budgets, err := b.next.List(ctx, userID, offset, limit)
	b.record(ctx, "budget_list", start, err)
	return budgets, err
}

// Delete records metrics for budget deletion.
func (b *budgetUseCaseWithMetrics) Delete(ctx context.Context, userID uuid.UUID, period time.Time) error {
	start := time.Now()
	err := b.next.Delete(ctx, userID, period)
	b.record(ctx, "budget_delete", start, err)
	return err
}
