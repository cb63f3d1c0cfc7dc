package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/budget/http/dto"
	"github.com/allisson/fintrack/internal/budget/usecase"
	"github.com/allisson/fintrack/internal/budget/usecase/mocks"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

var march = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func setupTestHandler(t *testing.T) (*BudgetHandler, *mocks.MockBudgetUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockBudgetUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewBudgetHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(
	method, path string,
	body interface{},
	user *userDomain.User,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(authHTTP.WithUser(req.Context(), user))
	}
	c.Request = req

	return c, w
}

func strPtr(s string) *string { return &s }

func sampleBudget(userID uuid.UUID) *domain.Budget {
	income := decimal.RequireFromString("5000.00")
	goal := decimal.RequireFromString("750.50")
	return &domain.Budget{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        userID,
		Period:        march,
		PlannedIncome: &income,
		SavingsGoal:   &goal,
		CreatedAt:     march,
		UpdatedAt:     march,
	}
}

func TestBudgetHandler_UpsertHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7())}
		budget := sampleBudget(user.ID)

		mockUseCase.On("Upsert", mock.Anything, user.ID, march, mock.MatchedBy(func(in usecase.BudgetInput) bool {
			return in.PlannedIncome != nil &&
				in.PlannedIncome.Equal(decimal.RequireFromString("5000.00")) &&
				in.PlannedExpense == nil &&
				in.SavingsGoal != nil
		})).Return(budget, nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/budgets/2024-03", dto.UpsertBudgetRequest{
			PlannedIncome: strPtr("5000.00"),
			SavingsGoal:   strPtr("750.50"),
		}, user)
		c.Params = gin.Params{{Key: "period", Value: "2024-03"}}
		handler.UpsertHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.BudgetResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "2024-03", response.Period)
		require.NotNil(t, response.PlannedIncome)
		assert.Equal(t, "5000.00", *response.PlannedIncome)
		assert.Equal(t, "750.50", *response.SavingsGoal)
		assert.Nil(t, response.PlannedExpense)
	})

	t.Run("Error_InvalidPeriod", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/budgets/2024-3", dto.UpsertBudgetRequest{}, &userDomain.User{})
		c.Params = gin.Params{{Key: "period", Value: "2024-3"}}
		handler.UpsertHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NegativeAmount", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/budgets/2024-03", dto.UpsertBudgetRequest{
			PlannedExpense: strPtr("-10"),
		}, &userDomain.User{})
		c.Params = gin.Params{{Key: "period", Value: "2024-03"}}
		handler.UpsertHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "planned_expense")
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/budgets/2024-03", dto.UpsertBudgetRequest{}, nil)
		c.Params = gin.Params{{Key: "period", Value: "2024-03"}}
		handler.UpsertHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBudgetHandler_GetHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7())}

	mockUseCase.On("Get", mock.Anything, user.ID, march).Return(nil, domain.ErrBudgetNotFound).Once()

	c, w := createTestContext(http.MethodGet, "/v1/budgets/2024-03", nil, user)
	c.Params = gin.Params{{Key: "period", Value: "2024-03"}}
	handler.GetHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBudgetHandler_ListHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7())}

	mockUseCase.On("List", mock.Anything, user.ID, 0, 12).
		Return([]*domain.Budget{sampleBudget(user.ID)}, nil).
		Once()

	c, w := createTestContext(http.MethodGet, "/v1/budgets?limit=12", nil, user)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListBudgetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "5000.00", *response.Data[0].PlannedIncome)
}

func TestBudgetHandler_DeleteHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7())}

	mockUseCase.On("Delete", mock.Anything, user.ID, march).Return(nil).Once()

	c, w := createTestContext(http.MethodDelete, "/v1/budgets/2024-03", nil, user)
	c.Params = gin.Params{{Key: "period", Value: "2024-03"}}
	handler.DeleteHandler(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
