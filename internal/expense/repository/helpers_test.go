package repository

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/crypto/keyctx"
	cryptoService "github.com/allisson/fintrack/internal/crypto/service"
)

var expenseColumns = []string{
	"id", "user_id", "category", "title", "description", "amount",
	"period_start", "expense_date", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newCodecs(t *testing.T) field.Codecs {
	t.Helper()
	b := field.NewBinding()
	require.NoError(t, b.Register(cryptoService.NewAEADCodec(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)))
	return field.NewCodecs(b)
}

func userContext(t *testing.T, fill byte) context.Context {
	t.Helper()
	ctx, scope := keyctx.Begin(context.Background(), bytes.Repeat([]byte{fill}, 32))
	t.Cleanup(scope.Close)
	return ctx
}

// sealedString matches a column argument that is ciphertext of want under the key of ctx.
type sealedString struct {
	ctx    context.Context
	codecs field.Codecs
	want   string
}

func (m sealedString) Match(v driver.Value) bool {
	blob, ok := v.(string)
	if !ok || blob == m.want {
		return false
	}
	got, err := m.codecs.String.Decrypt(m.ctx, blob)
	return err == nil && got == m.want
}

// sealedDecimal matches a column argument that is ciphertext of the decimal want.
type sealedDecimal struct {
	ctx    context.Context
	codecs field.Codecs
	want   string
}

func (m sealedDecimal) Match(v driver.Value) bool {
	blob, ok := v.(string)
	if !ok {
		return false
	}
	got, err := m.codecs.Decimal.Decrypt(m.ctx, blob)
	return err == nil && got.StringFixed(-got.Exponent()) == m.want
}
