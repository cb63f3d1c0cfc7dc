package dto

import (
	"time"

	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/httputil"
	"github.com/allisson/fintrack/internal/period"
)

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Amount      string    `json:"amount"`
	Period      string    `json:"period"`
	ExpenseDate *string   `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListExpensesResponse represents a page of expenses in API responses.
type ListExpensesResponse struct {
	Data []ExpenseResponse `json:"data"`
}

// MapExpenseToResponse converts a domain expense to an API response.
func MapExpenseToResponse(e *domain.Expense) ExpenseResponse {
	response := ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Title:       e.Title,
		Description: e.Description,
		Amount:      httputil.FormatDecimal(e.Amount),
		Period:      period.Format(e.Period),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.ExpenseDate != nil {
		date := e.ExpenseDate.Format(period.DateLayout)
		response.ExpenseDate = &date
	}
	return response
}

// MapExpensesToListResponse converts domain expenses to a list response.
func MapExpensesToListResponse(expenses []*domain.Expense) ListExpensesResponse {
	data := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, MapExpenseToResponse(e))
	}
	return ListExpensesResponse{Data: data}
}
