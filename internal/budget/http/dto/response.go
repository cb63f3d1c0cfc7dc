package dto

import (
	"time"

	"github.com/allisson/fintrack/internal/budget/domain"
	"github.com/allisson/fintrack/internal/httputil"
	"github.com/allisson/fintrack/internal/period"
)

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	Period         string    `json:"period"`
	PlannedIncome  *string   `json:"planned_income"`
	PlannedExpense *string   `json:"planned_expense"`
	SavingsGoal    *string   `json:"savings_goal"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListBudgetsResponse represents a page of budgets in API responses.
type ListBudgetsResponse struct {
	Data []BudgetResponse `json:"data"`
}

// MapBudgetToResponse converts a domain budget to an API response.
func MapBudgetToResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:             b.ID.String(),
		Period:         period.Format(b.Period),
		PlannedIncome:  httputil.FormatDecimalPtr(b.PlannedIncome),
		PlannedExpense: httputil.FormatDecimalPtr(b.PlannedExpense),
		SavingsGoal:    httputil.FormatDecimalPtr(b.SavingsGoal),
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// MapBudgetsToListResponse converts domain budgets to a list response.
func MapBudgetsToListResponse(budgets []*domain.Budget) ListBudgetsResponse {
	data := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		data = append(data, MapBudgetToResponse(b))
	}
	return ListBudgetsResponse{Data: data}
}
