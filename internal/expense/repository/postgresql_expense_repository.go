package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/database"
	"github.com/allisson/fintrack/internal/expense/domain"

	apperrors "github.com/allisson/fintrack/internal/errors"
)

const postgreSQLExpenseColumns = `id, user_id, category, title, description, amount, period_start, expense_date, created_at, updated_at`

// PostgreSQLExpenseRepository handles expense persistence for PostgreSQL.
type PostgreSQLExpenseRepository struct {
	db     *sql.DB
	codecs field.Codecs
}

// NewPostgreSQLExpenseRepository creates a new PostgreSQLExpenseRepository.
func NewPostgreSQLExpenseRepository(db *sql.DB, codecs field.Codecs) *PostgreSQLExpenseRepository {
	return &PostgreSQLExpenseRepository{db: db, codecs: codecs}
}

// Create inserts a new expense.
func (r *PostgreSQLExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	sealed, err := sealExpense(ctx, r.codecs, e)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `INSERT INTO expense_records (` + postgreSQLExpenseColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = querier.ExecContext(
		ctx,
		query,
		e.ID,
		e.UserID,
		e.Category,
		sealed.title,
		sealed.description,
		sealed.amount,
		e.Period,
		sealed.expenseDate,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create expense")
	}
	return nil
}

// GetByID retrieves an expense of userID.
func (r *PostgreSQLExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgreSQLExpenseColumns + ` FROM expense_records WHERE id = $1 AND user_id = $2`

	e, sealed, err := scanPostgreSQLExpense(querier.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get expense")
	}
	if err := sealed.open(ctx, r.codecs, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the expenses of userID, newest period first.
func (r *PostgreSQLExpenseRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]*domain.Expense, error) {
	querier := database.GetTx(ctx, r.db)

	args := []any{userID}
	query := `SELECT ` + postgreSQLExpenseColumns + ` FROM expense_records WHERE user_id = $1`
	if filter.Period != nil {
		args = append(args, *filter.Period)
		query += fmt.Sprintf(" AND period_start = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(
		" ORDER BY period_start DESC, created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		len(args)-1,
		len(args),
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expenses")
	}
	defer func() {
		_ = rows.Close()
	}()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		e, sealed, err := scanPostgreSQLExpense(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan expense")
		}
		if err := sealed.open(ctx, r.codecs, e); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate expenses")
	}
	return expenses, nil
}

// Update rewrites every mutable column of an expense.
func (r *PostgreSQLExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	sealed, err := sealExpense(ctx, r.codecs, e)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE expense_records
			  SET category = $1, title = $2, description = $3, amount = $4,
			      period_start = $5, expense_date = $6, updated_at = $7
			  WHERE id = $8 AND user_id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		e.Category,
		sealed.title,
		sealed.description,
		sealed.amount,
		e.Period,
		sealed.expenseDate,
		e.UpdatedAt,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update expense")
	}
	return expectOneRow(result)
}

// Delete removes an expense of userID.
func (r *PostgreSQLExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM expense_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete expense")
	}
	return expectOneRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLExpense(row rowScanner) (*domain.Expense, *sealedExpense, error) {
	var (
		e      domain.Expense
		sealed sealedExpense
	)
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Category,
		&sealed.title,
		&sealed.description,
		&sealed.amount,
		&e.Period,
		&sealed.expenseDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &e, &sealed, nil
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}
