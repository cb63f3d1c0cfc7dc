package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/database"
	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/user/domain"
)

// MySQLUserRepository stores users in MySQL. UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository returns a repository backed by db.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func mysqlID(id uuid.UUID) ([]byte, error) {
	raw, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return raw, nil
}

// Create inserts user together with its wrapped data key.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	id, err := mysqlID(user.ID)
	if err != nil {
		return err
	}
	_, err = database.GetTx(ctx, r.db).ExecContext(ctx,
		`INSERT INTO users (`+userColumnList+`) VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		id, user.Name, user.Email, user.Password, nullableString(user.WrappedDataKey),
	)
	if err != nil {
		return insertError(err)
	}
	return nil
}

func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	raw, err := mysqlID(id)
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, "id", raw, "failed to get user by id")
}

func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email, "failed to get user by email")
}

func (r *MySQLUserRepository) getOne(ctx context.Context, column string, arg any, msg string) (*domain.User, error) {
	row := database.GetTx(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumnList+` FROM users WHERE `+column+` = ?`, arg)
	user, err := scanMySQLUser(row)
	if err != nil {
		return nil, lookupError(err, msg)
	}
	return user, nil
}

// SetWrappedDataKeyIfAbsent stores wrapped only when the user has no data key yet and
// reports whether this call stored it.
func (r *MySQLUserRepository) SetWrappedDataKeyIfAbsent(ctx context.Context, id uuid.UUID, wrapped string) (bool, error) {
	raw, err := mysqlID(id)
	if err != nil {
		return false, err
	}
	result, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET wrapped_data_key = ?, updated_at = NOW()
		 WHERE id = ? AND wrapped_data_key IS NULL`,
		wrapped, raw,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to set wrapped data key")
	}
	return rowsAffectedOne(result)
}

// GetWrappedDataKey returns the stored wrapped data key, or "" when the user has none.
func (r *MySQLUserRepository) GetWrappedDataKey(ctx context.Context, id uuid.UUID) (string, error) {
	raw, err := mysqlID(id)
	if err != nil {
		return "", err
	}
	var wrapped sql.NullString
	err = database.GetTx(ctx, r.db).
		QueryRowContext(ctx, `SELECT wrapped_data_key FROM users WHERE id = ?`, raw).
		Scan(&wrapped)
	if err != nil {
		return "", lookupError(err, "failed to get wrapped data key")
	}
	return wrapped.String, nil
}

// ListWithoutDataKey returns up to limit users without a wrapped data key, oldest first.
func (r *MySQLUserRepository) ListWithoutDataKey(ctx context.Context, limit int) ([]*domain.User, error) {
	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx,
		`SELECT `+userColumnList+` FROM users
		 WHERE wrapped_data_key IS NULL ORDER BY created_at ASC, id ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users without data key")
	}
	return collectUsers(rows, scanMySQLUser)
}

func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var raw []byte
	return scanUser(row, &raw, func(u *domain.User) error {
		return u.ID.UnmarshalBinary(raw)
	})
}
