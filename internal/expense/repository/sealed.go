// Package repository provides data persistence implementations for expense records.
//
// Sensitive columns are encrypted with the field codecs on the way in and decrypted on
// the way out, so callers must run inside a Key Context scope.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/expense/domain"
)

// sealedExpense holds the column values of an expense with sensitive fields encrypted.
type sealedExpense struct {
	title       string
	description sql.NullString
	amount      string
	expenseDate sql.NullTime
}

func sealExpense(ctx context.Context, codecs field.Codecs, e *domain.Expense) (*sealedExpense, error) {
	title, err := codecs.String.Encrypt(ctx, e.Title)
	if err != nil {
		return nil, err
	}
	description, err := codecs.String.ToStorage(ctx, e.Description)
	if err != nil {
		return nil, err
	}
	amount, err := codecs.Decimal.Encrypt(ctx, e.Amount)
	if err != nil {
		return nil, err
	}

	sealed := &sealedExpense{title: title, description: description, amount: amount}
	if e.ExpenseDate != nil {
		sealed.expenseDate = sql.NullTime{Time: *e.ExpenseDate, Valid: true}
	}
	return sealed, nil
}

func (s *sealedExpense) open(ctx context.Context, codecs field.Codecs, e *domain.Expense) error {
	title, err := codecs.String.Decrypt(ctx, s.title)
	if err != nil {
		return err
	}
	description, err := codecs.String.FromStorage(ctx, s.description)
	if err != nil {
		return err
	}
	amount, err := codecs.Decimal.Decrypt(ctx, s.amount)
	if err != nil {
		return err
	}

	e.Title = title
	e.Description = description
	e.Amount = amount
	if s.expenseDate.Valid {
		date := s.expenseDate.Time
		e.ExpenseDate = &date
	}
	return nil
}
