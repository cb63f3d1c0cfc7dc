package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fintrack/internal/budget/domain"
	dbMocks "github.com/allisson/fintrack/internal/database/mocks"
)

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBudgetRepository) GetByPeriod(
	ctx context.Context,
	userID uuid.UUID,
	period time.Time,
) (*domain.Budget, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Budget, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, userID uuid.UUID, period time.Time) error {
	return m.Called(ctx, userID, period).Error(0)
}

var (
	fixedNow = time.Date(2024, time.May, 17, 9, 30, 0, 0, time.UTC)
	may      = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *MockBudgetRepository, tx *dbMocks.MockTxManager) *budgetUseCase {
	uc := NewBudgetUseCase(tx, repo).(*budgetUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBudgetUseCase_Upsert(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		repo := &MockBudgetRepository{}
		tx := &dbMocks.MockTxManager{}
		uc := newTestUseCase(repo, tx)

		notes := "  keep it lean "
		stored := &domain.Budget{ID: uuid.Must(uuid.NewV7()), UserID: userID, Period: may}

		tx.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("Upsert", ctx, mock.MatchedBy(func(b *domain.Budget) bool {
			return b.UserID == userID &&
				b.Period.Equal(may) &&
				b.PlannedIncome.String() == "5000" &&
				b.PlannedExpense == nil &&
				*b.Notes == "keep it lean" &&
				b.UpdatedAt.Equal(fixedNow)
		})).Return(nil).Once()
		repo.On("GetByPeriod", ctx, userID, may).Return(stored, nil).Once()

		got, err := uc.Upsert(ctx, userID, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), BudgetInput{
			PlannedIncome: dec("5000.00"),
			Notes:         &notes,
		})
		require.NoError(t, err)
		assert.Same(t, stored, got)
		repo.AssertExpectations(t)
		tx.AssertExpectations(t)
	})

	t.Run("blank notes become null", func(t *testing.T) {
		repo := &MockBudgetRepository{}
		tx := &dbMocks.MockTxManager{}
		uc := newTestUseCase(repo, tx)

		blank := " "
		tx.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("Upsert", ctx, mock.MatchedBy(func(b *domain.Budget) bool { return b.Notes == nil })).Return(nil).Once()
		repo.On("GetByPeriod", ctx, userID, may).Return(&domain.Budget{}, nil).Once()

		_, err := uc.Upsert(ctx, userID, may, BudgetInput{Notes: &blank})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("negative amount", func(t *testing.T) {
		repo := &MockBudgetRepository{}
		tx := &dbMocks.MockTxManager{}
		uc := newTestUseCase(repo, tx)

		_, err := uc.Upsert(ctx, userID, may, BudgetInput{SavingsGoal: dec("-1")})
		assert.ErrorIs(t, err, domain.ErrNegativeAmount)
		tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &MockBudgetRepository{}
		tx := &dbMocks.MockTxManager{}
		uc := newTestUseCase(repo, tx)

		boom := errors.New("boom")
		tx.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("Upsert", ctx, mock.Anything).Return(boom).Once()

		_, err := uc.Upsert(ctx, userID, may, BudgetInput{})
		assert.ErrorIs(t, err, boom)
		repo.AssertNotCalled(t, "GetByPeriod", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBudgetUseCase_GetListDelete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	repo := &MockBudgetRepository{}
	uc := newTestUseCase(repo, &dbMocks.MockTxManager{})

	mid := time.Date(2024, time.May, 14, 8, 0, 0, 0, time.UTC)
	want := &domain.Budget{UserID: userID, Period: may}

	repo.On("GetByPeriod", ctx, userID, may).Return(want, nil).Once()
	repo.On("List", ctx, userID, 0, 12).Return([]*domain.Budget{want}, nil).Once()
	repo.On("Delete", ctx, userID, may).Return(domain.ErrBudgetNotFound).Once()

	got, err := uc.Get(ctx, userID, mid)
	require.NoError(t, err)
	assert.Same(t, want, got)

	list, err := uc.List(ctx, userID, 0, 12)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, uc.Delete(ctx, userID, mid), domain.ErrBudgetNotFound)
	repo.AssertExpectations(t)
}
