package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/database"
	"github.com/allisson/fintrack/internal/expense/domain"

	apperrors "github.com/allisson/fintrack/internal/errors"
)

const mySQLExpenseColumns = `id, user_id, category, title, description, amount, period_start, expense_date, created_at, updated_at`

// MySQLExpenseRepository handles expense persistence for MySQL. UUIDs are stored as BINARY(16).
type MySQLExpenseRepository struct {
	db     *sql.DB
	codecs field.Codecs
}

// NewMySQLExpenseRepository creates a new MySQLExpenseRepository.
func NewMySQLExpenseRepository(db *sql.DB, codecs field.Codecs) *MySQLExpenseRepository {
	return &MySQLExpenseRepository{db: db, codecs: codecs}
}

// Create inserts a new expense.
func (r *MySQLExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	ids, err := marshalIDs(e.ID, e.UserID)
	if err != nil {
		return err
	}
	sealed, err := sealExpense(ctx, r.codecs, e)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `INSERT INTO expense_records (` + mySQLExpenseColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
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
func (r *MySQLExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Expense, error) {
	ids, err := marshalIDs(id, userID)
	if err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mySQLExpenseColumns + ` FROM expense_records WHERE id = ? AND user_id = ?`

	e, sealed, err := scanMySQLExpense(querier.QueryRowContext(ctx, query, ids[0], ids[1]))
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
func (r *MySQLExpenseRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]*domain.Expense, error) {
	ids, err := marshalIDs(userID)
	if err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, r.db)

	args := []any{ids[0]}
	query := `SELECT ` + mySQLExpenseColumns + ` FROM expense_records WHERE user_id = ?`
	if filter.Period != nil {
		args = append(args, *filter.Period)
		query += ` AND period_start = ?`
	}
	args = append(args, filter.Limit, filter.Offset)
	query += ` ORDER BY period_start DESC, created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expenses")
	}
	defer func() {
		_ = rows.Close()
	}()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		e, sealed, err := scanMySQLExpense(rows)
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
func (r *MySQLExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	ids, err := marshalIDs(e.ID, e.UserID)
	if err != nil {
		return err
	}
	sealed, err := sealExpense(ctx, r.codecs, e)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE expense_records
			  SET category = ?, title = ?, description = ?, amount = ?,
			      period_start = ?, expense_date = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`

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
		ids[0],
		ids[1],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update expense")
	}
	return expectOneRow(result)
}

// Delete removes an expense of userID.
func (r *MySQLExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ids, err := marshalIDs(id, userID)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM expense_records WHERE id = ? AND user_id = ?`, ids[0], ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to delete expense")
	}
	return expectOneRow(result)
}

func scanMySQLExpense(row rowScanner) (*domain.Expense, *sealedExpense, error) {
	var (
		e           domain.Expense
		sealed      sealedExpense
		idBytes     []byte
		userIDBytes []byte
	)
	err := row.Scan(
		&idBytes,
		&userIDBytes,
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
	if err := e.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := e.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &e, &sealed, nil
}

// marshalIDs converts UUIDs to their BINARY(16) form.
func marshalIDs(ids ...uuid.UUID) ([][]byte, error) {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		out[i] = b
	}
	return out, nil
}
