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

const postgreSQLBudgetColumns = `id, user_id, period_start, planned_income, planned_expense, savings_goal, notes, created_at, updated_at`

// PostgreSQLBudgetRepository handles budget persistence for PostgreSQL.
type PostgreSQLBudgetRepository struct {
	db     *sql.DB
	codecs field.Codecs
}

// NewPostgreSQLBudgetRepository creates a new PostgreSQLBudgetRepository.
func NewPostgreSQLBudgetRepository(db *sql.DB, codecs field.Codecs) *PostgreSQLBudgetRepository {
	return &PostgreSQLBudgetRepository{db: db, codecs: codecs}
}

// Upsert inserts the budget or replaces the budget of the same user and period. On
// conflict the existing ID and CreatedAt are kept.
func (r *PostgreSQLBudgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	sealed, err := sealBudget(ctx, r.codecs, b)
	if err != nil {
		return err
	}

	querier := database.GetTx(ctx, r.db)
	query := `INSERT INTO budgets (` + postgreSQLBudgetColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (user_id, period_start) DO UPDATE SET
			      planned_income = EXCLUDED.planned_income,
			      planned_expense = EXCLUDED.planned_expense,
			      savings_goal = EXCLUDED.savings_goal,
			      notes = EXCLUDED.notes,
			      updated_at = EXCLUDED.updated_at
			  RETURNING id, created_at`

	err = querier.QueryRowContext(
		ctx,
		query,
		b.ID,
		b.UserID,
		b.Period,
		sealed.plannedIncome,
		sealed.plannedExpense,
		sealed.savingsGoal,
		sealed.notes,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert budget")
	}
	return nil
}

// GetByPeriod retrieves the budget of userID for the month starting at period.
func (r *PostgreSQLBudgetRepository) GetByPeriod(
	ctx context.Context,
	userID uuid.UUID,
	period time.Time,
) (*domain.Budget, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgreSQLBudgetColumns + ` FROM budgets WHERE user_id = $1 AND period_start = $2`

	b, sealed, err := scanPostgreSQLBudget(querier.QueryRowContext(ctx, query, userID, period))
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
func (r *PostgreSQLBudgetRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Budget, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgreSQLBudgetColumns + ` FROM budgets WHERE user_id = $1
			  ORDER BY period_start DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list budgets")
	}
	defer func() {
		_ = rows.Close()
	}()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		b, sealed, err := scanPostgreSQLBudget(rows)
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
func (r *PostgreSQLBudgetRepository) Delete(ctx context.Context, userID uuid.UUID, period time.Time) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM budgets WHERE user_id = $1 AND period_start = $2`,
		userID,
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

func scanPostgreSQLBudget(row rowScanner) (*domain.Budget, *sealedBudget, error) {
	var (
		b      domain.Budget
		sealed sealedBudget
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
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
	return &b, &sealed, nil
}
