package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/database"

	apperrors "github.com/allisson/fintrack/internal/errors"
)

const mySQLBudgetColumns = `id, user_id, period_start, planned_income, planned_expense, savings_goal, notes, created_at, updated_at`

// MySQLBudgetRepository handles budget persistence for MySQL. UUIDs are stored as BINARY(16).
type MySQLBudgetRepository struct {
	db     *sql.DB
	codecs field.Codecs
}

// NewMySQLBudgetRepository creates a new MySQLBudgetRepository.
func NewMySQLBudgetRepository(db *sql.DB, codecs field.Codecs) *MySQLBudgetRepository {
	return &MySQLBudgetRepository{db: db, codecs: codecs}
}

// Upsert inserts the budget or replaces the budget of the same user and period. MySQL
// cannot return the surviving row, so it is read back to fill ID and CreatedAt.
func (r *MySQLBudgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	id, err := b.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userID, err := b.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	sealed, err := sealBudget(ctx, r.codecs, b)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `INSERT INTO budgets (` + mySQLBudgetColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      planned_income = VALUES(planned_income),
			      planned_expense = VALUES(planned_expense),
			      savings_goal = VALUES(savings_goal),
			      notes = VALUES(notes),
			      updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		b.Period,
		sealed.plannedIncome,
		sealed.plannedExpense,
		sealed.savingsGoal,
		sealed.notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert budget")
	}

	var storedID []byte
	err = querier.QueryRowContext(
		ctx,
		`SELECT id, created_at FROM budgets WHERE user_id = ? AND period_start = ?`,
		userID,
		b.Period,
	).Scan(&storedID, &b.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to read upserted budget")
	}
	if err := b.ID.UnmarshalBinary(storedID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return nil
}

// GetByPeriod retrieves the budget of userID for the month starting at period.
func (r *MySQLBudgetRepository) GetByPeriod(
	ctx context.Context,
	userID uuid.UUID,
	period time.Time,
) (*domain.Budget, error) {
	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mySQLBudgetColumns + ` FROM budgets WHERE user_id = ? AND period_start = ?`

	b, sealed, err := scanMySQLBudget(querier.QueryRowContext(ctx, query, userIDBytes, period))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get budget")
	}
	if err := sealed.open(ctx, r.codecs, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the budgets of userID, newest period first.
func (r *MySQLBudgetRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Budget, error) {
	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mySQLBudgetColumns + ` FROM budgets WHERE user_id = ?
			  ORDER BY period_start DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list budgets")
	}
	defer func() {
		_ = rows.Close()
	}()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		b, sealed, err := scanMySQLBudget(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan budget")
		}
		if err := sealed.open(ctx, r.codecs, b); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate budgets")
	}
	return budgets, nil
}

// Delete removes the budget of userID for period.
func (r *MySQLBudgetRepository) Delete(ctx context.Context, userID uuid.UUID, period time.Time) error {
	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM budgets WHERE user_id = ? AND period_start = ?`,
		userIDBytes,
		period,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete budget")
	}
	if err := expectOneRow(result); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return err
		}
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	return nil
}

func scanMySQLBudget(row rowScanner) (*domain.Budget, *sealedBudget, error) {
	var (
		b           domain.Budget
		sealed      sealedBudget
		idBytes     []byte
		userIDBytes []byte
	)
	err := row.Scan(
		&idBytes,
		&userIDBytes,
		&b.Period,
		&sealed.plannedIncome,
		&sealed.plannedExpense,
		&sealed.savingsGoal,
		&sealed.notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	if err := b.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := b.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &b, &sealed, nil
}
