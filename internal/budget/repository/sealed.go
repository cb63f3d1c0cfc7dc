// Package repository provides data persistence implementations for budgets.
//
// Every amount and the notes are encrypted with the field codecs, so callers must run
// inside a Key Context scope whenever those columns are read or written.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/crypto/field"
)

type sealedBudget struct {
	plannedIncome  sql.NullString
	plannedExpense sql.NullString
	savingsGoal    sql.NullString
	notes          sql.NullString
}

func sealBudget(ctx context.Context, codecs field.Codecs, b *domain.Budget) (*sealedBudget, error) {
	var (
		s   sealedBudget
		err error
	)
	if s.plannedIncome, err = codecs.Decimal.ToStorage(ctx, b.PlannedIncome); err != nil {
		return nil, err
	}
	if s.plannedExpense, err = codecs.Decimal.ToStorage(ctx, b.PlannedExpense); err != nil {
		return nil, err
	}
	if s.savingsGoal, err = codecs.Decimal.ToStorage(ctx, b.SavingsGoal); err != nil {
		return nil, err
	}
	if s.notes, err = codecs.String.ToStorage(ctx, b.Notes); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *sealedBudget) open(ctx context.Context, codecs field.Codecs, b *domain.Budget) error {
	var err error
	if b.PlannedIncome, err = codecs.Decimal.FromStorage(ctx, s.plannedIncome); err != nil {
		return err
	}
	if b.PlannedExpense, err = codecs.Decimal.FromStorage(ctx, s.plannedExpense); err != nil {
		return err
	}
	if b.SavingsGoal, err = codecs.Decimal.FromStorage(ctx, s.savingsGoal); err != nil {
		return err
	}
	if b.Notes, err = codecs.String.FromStorage(ctx, s.notes); err != nil {
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}
