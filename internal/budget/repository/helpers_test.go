package repository

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fintrack/internal/budget/domain"
	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/crypto/field"
	"github.com/allisson/fintrack/internal/crypto/keyctx"
	cryptoService "github.com/allisson/fintrack/internal/crypto/service"
)

var budgetColumns = []string{
	"id", "user_id", "period_start", "planned_income", "planned_expense",
	"savings_goal", "notes", "created_at", "updated_at",
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
	require.NoError(t, b.Register(cryptoService.NewAEADCodec(cryptoService.NewAEADManager(), cryptoDomain.ChaCha20)))
	return field.NewCodecs(b)
}

func userContext(t *testing.T, fill byte) context.Context {
	t.Helper()
	ctx, scope := keyctx.Begin(context.Background(), bytes.Repeat([]byte{fill}, 32))
	t.Cleanup(scope.Close)
	return ctx
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleBudget() *domain.Budget {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	notes := "Save for vacation"
	return &domain.Budget{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        uuid.Must(uuid.NewV7()),
		Period:        time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PlannedIncome: amount("5000.00"),
		SavingsGoal:   amount("750.50"),
		Notes:         &notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// sealedValue matches a column argument holding ciphertext of want under the key of ctx.
type sealedValue struct {
	ctx    context.Context
	codecs field.Codecs
	want   string
}

func (m sealedValue) Match(v driver.Value) bool {
	blob, ok := v.(string)
	if !ok || blob == m.want {
		return false
	}
	got, err := m.codecs.String.Decrypt(m.ctx, blob)
	return err == nil && got == m.want
}

func seal(t *testing.T, ctx context.Context, codecs field.Codecs, plaintext string) string {
	t.Helper()
	blob, err := codecs.String.Encrypt(ctx, plaintext)
	require.NoError(t, err)
	return blob
}
