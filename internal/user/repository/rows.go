// Package repository persists users in PostgreSQL and MySQL.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/user/domain"
)

const (
	userColumnList = `id, name, email, password, wrapped_data_key, created_at, updated_at`

	pgUniqueViolation   = pq.ErrorCode("23505")
	mysqlDuplicateEntry  = 1062
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row. id receives the driver's representation of the primary
// key and is decoded by the caller-supplied function.
func scanUser(row rowScanner, id any, decodeID func(*domain.User) error) (*domain.User, error) {
	var (
		user    domain.User
		wrapped sql.NullString
	)
	if err := row.Scan(id, &user.Name, &user.Email, &user.Password, &wrapped, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeID(&user); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	user.WrappedDataKey = wrapped.String
	return &user, nil
}

func collectUsers(rows *sql.Rows, scan func(rowScanner) (*domain.User, error)) ([]*domain.User, error) {
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}

// lookupError maps a missing row to ErrUserNotFound and wraps anything else with msg.
func lookupError(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return apperrors.Wrap(err, msg)
}

func insertError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrUserAlreadyExists
	}
	return apperrors.Wrap(err, "failed to create user")
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func rowsAffectedOne(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return n == 1, nil
}
