package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/database"
	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/user/domain"
)

// PostgreSQLUserRepository stores users in PostgreSQL with native UUID keys.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository returns a repository backed by db.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts user together with its wrapped data key.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		`INSERT INTO users (`+userColumnList+`) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
		user.ID, user.Name, user.Email, user.Password, nullableString(user.WrappedDataKey),
	)
	if err != nil {
		return insertError(err)
	}
	return nil
}

func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "id", id, "failed to get user by id")
}

func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email, "failed to get user by email")
}

func (r *PostgreSQLUserRepository) getOne(ctx context.Context, column string, arg any, msg string) (*domain.User, error) {
	row := database.GetTx(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumnList+` FROM users WHERE `+column+` = $1`, arg)
	user, err := scanPostgreSQLUser(row)
	if err != nil {
		return nil, lookupError(err, msg)
	}
	return user, nil
}

// SetWrappedDataKeyIfAbsent stores wrapped only when the user has no data key yet and
// reports whether this call stored it.
func (r *PostgreSQLUserRepository) SetWrappedDataKeyIfAbsent(ctx context.Context, id uuid.UUID, wrapped string) (bool, error) {
	result, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET wrapped_data_key = $1, updated_at = NOW()
		 WHERE id = $2 AND wrapped_data_key IS NULL`,
		wrapped, id,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to set wrapped data key")
	}
	return rowsAffectedOne(result)
}

// GetWrappedDataKey returns the stored wrapped data key, or "" when the user has none.
func (r *PostgreSQLUserRepository) GetWrappedDataKey(ctx context.Context, id uuid.UUID) (string, error) {
	var wrapped sql.NullString
	err := database.GetTx(ctx, r.db).
		QueryRowContext(ctx, `SELECT wrapped_data_key FROM users WHERE id = $1`, id).
		Scan(&wrapped)
	if err != nil {
		return "", lookupError(err, "failed to get wrapped data key")
	}
	return wrapped.String, nil
}

// ListWithoutDataKey returns up to limit users without a wrapped data key, oldest first.
func (r *PostgreSQLUserRepository) ListWithoutDataKey(ctx context.Context, limit int) ([]*domain.User, error) {
	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx,
		`SELECT `+userColumnList+` FROM users
		 WHERE wrapped_data_key IS NULL ORDER BY created_at ASC, id ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users without data key")
	}
	return collectUsers(rows, scanPostgreSQLUser)
}

func scanPostgreSQLUser(row rowScanner) (*domain.User, error) {
	var id uuid.UUID
	return scanUser(row, &id, func(u *domain.User) error {
		u.ID = id
		return nil
	})
}
