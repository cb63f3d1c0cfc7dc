package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/database"
	"github.com/allisson/fintrack/internal/period"
)

// budgetUseCase implements BudgetUseCase.
type budgetUseCase struct {
	txManager  database.TxManager
	budgetRepo BudgetRepository
	now        func() time.Time
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(txManager database.TxManager, budgetRepo BudgetRepository) BudgetUseCase {
	return &budgetUseCase{
		txManager:  txManager,
		budgetRepo: budgetRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Upsert stores the budget of userID for the month containing p.
func (b *budgetUseCase) Upsert(
	ctx context.Context,
	userID uuid.UUID,
	p time.Time,
	input BudgetInput,
) (*domain.Budget, error) {
	for _, amount := range []*decimal.Decimal{input.PlannedIncome, input.PlannedExpense, input.SavingsGoal} {
		if amount != nil && amount.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
	}

	var notes *string
	if input.Notes != nil {
		if n := strings.TrimSpace(*input.Notes); n != "" {
			notes = &n
		}
	}

	now := b.now()
	budget := &domain.Budget{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         userID,
		Period:         period.Start(p),
		PlannedIncome:  input.PlannedIncome,
		PlannedExpense: input.PlannedExpense,
		SavingsGoal:    input.SavingsGoal,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var stored *domain.Budget
	err := b.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := b.budgetRepo.Upsert(txCtx, budget); err != nil {
			return err
		}
		var err error
		stored, err = b.budgetRepo.GetByPeriod(txCtx, userID, budget.Period)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Get returns the budget of userID for the month containing p.
func (b *budgetUseCase) Get(ctx context.Context, userID uuid.UUID, p time.Time) (*domain.Budget, error) {
	return b.budgetRepo.GetByPeriod(ctx, userID, period.Start(p))
}

// List returns the budgets of userID, newest first.
func (b *budgetUseCase) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Budget, error) {
	return b.budgetRepo.List(ctx, userID, offset, limit)
}

// Delete removes the budget of userID for the month containing p.
func (b *budgetUseCase) Delete(ctx context.Context, userID uuid.UUID, p time.Time) error {
	return b.budgetRepo.Delete(ctx, userID, period.Start(p))
}
