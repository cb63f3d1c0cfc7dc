package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/database"
	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/period"
)

// expenseUseCase implements ExpenseUseCase.
type expenseUseCase struct {
	txManager   database.TxManager
	expenseRepo ExpenseRepository
	now         func() time.Time
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(txManager database.TxManager, expenseRepo ExpenseRepository) ExpenseUseCase {
	return &expenseUseCase{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create validates input and stores a new expense for userID.
func (e *expenseUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input ExpenseInput,
) (*domain.Expense, error) {
	expense, err := newExpense(userID, input, e.now())
	if err != nil {
		return nil, err
	}

	if err := e.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Get returns one expense of userID.
func (e *expenseUseCase) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	return e.expenseRepo.GetByID(ctx, userID, id)
}

// List returns the expenses of userID matching filter.
func (e *expenseUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]*domain.Expense, error) {
	if filter.Period != nil {
		start := period.Start(*filter.Period)
		filter.Period = &start
	}
	return e.expenseRepo.List(ctx, userID, filter)
}

// Update replaces the mutable fields of an existing expense of userID.
func (e *expenseUseCase) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input ExpenseInput,
) (*domain.Expense, error) {
	var updated *domain.Expense
	err := e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := e.expenseRepo.GetByID(txCtx, userID, id)
		if err != nil {
			return err
		}

		now := e.now()
		if err := apply(existing, input, now); err != nil {
			return err
		}
		existing.UpdatedAt = now

		if err := e.expenseRepo.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an expense of userID.
func (e *expenseUseCase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return e.expenseRepo.Delete(ctx, userID, id)
}

// CreateBatch validates every input before opening the transaction, so an invalid item
// never leaves a partial batch behind.
func (e *expenseUseCase) CreateBatch(
	ctx context.Context,
	userID uuid.UUID,
	defaultPeriod string,
	inputs []ExpenseInput,
) ([]*domain.Expense, error) {
	if err := checkBatchSize(len(inputs)); err != nil {
		return nil, err
	}

	now := e.now()
	expenses := make([]*domain.Expense, 0, len(inputs))
	for i, input := range inputs {
		if strings.TrimSpace(input.Period) == "" && input.ExpenseDate == nil {
			input.Period = defaultPeriod
		}
		expense, err := newExpense(userID, input, now)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		expenses = append(expenses, expense)
	}

	err := e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, expense := range expenses {
			if err := e.expenseRepo.Create(txCtx, expense); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateBatch returns the updated expenses in request order.
func (e *expenseUseCase) UpdateBatch(
	ctx context.Context,
	userID uuid.UUID,
	updates []ExpenseUpdate,
) ([]*domain.Expense, error) {
	if err := checkBatchSize(len(updates)); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(updates))
	for _, u := range updates {
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("expense %s: %w", u.ID, domain.ErrDuplicateBatchID)
		}
		seen[u.ID] = struct{}{}
	}

	updated := make([]*domain.Expense, 0, len(updates))
	err := e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		now := e.now()
		for _, u := range updates {
			existing, err := e.expenseRepo.GetByID(txCtx, userID, u.ID)
			if err != nil {
				return fmt.Errorf("expense %s: %w", u.ID, err)
			}
			if err := apply(existing, u.Input, now); err != nil {
				return fmt.Errorf("expense %s: %w", u.ID, err)
			}
			existing.UpdatedAt = now

			if err := e.expenseRepo.Update(txCtx, existing); err != nil {
				return err
			}
			updated = append(updated, existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBatch removes ids of userID.
func (e *expenseUseCase) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if err := checkBatchSize(len(ids)); err != nil {
		return err
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	return e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, id := range unique {
			if err := e.expenseRepo.Delete(txCtx, userID, id); err != nil {
				return fmt.Errorf("expense %s: %w", id, err)
			}
		}
		return nil
	})
}

func checkBatchSize(n int) error {
	switch {
	case n == 0:
		return domain.ErrEmptyBatch
	case n > domain.MaxBatchSize:
		return domain.ErrBatchTooLarge
	}
	return nil
}

func newExpense(userID uuid.UUID, input ExpenseInput, now time.Time) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := apply(expense, input, now); err != nil {
		return nil, err
	}
	return expense, nil
}

// apply copies validated input onto expense.
func apply(expense *domain.Expense, input ExpenseInput, now time.Time) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.ErrTitleRequired
	}
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" {
		return domain.ErrCategoryRequired
	}
	if !input.Amount.IsPositive() {
		return domain.ErrAmountNotPositive
	}

	start, err := period.Resolve(input.Period, input.ExpenseDate, now)
	if err != nil {
		return err
	}

	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	var expenseDate *time.Time
	if input.ExpenseDate != nil {
		d := input.ExpenseDate.UTC().Truncate(24 * time.Hour)
		expenseDate = &d
	}

	expense.Category = category
	expense.Title = title
	expense.Description = description
	expense.Amount = input.Amount
	expense.Period = start
	expense.ExpenseDate = expenseDate
	return nil
}
