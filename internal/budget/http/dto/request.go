// Package dto provides data transfer objects for budget HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/budget/usecase"
	customValidation "github.com/allisson/fintrack/internal/validation"
)

// UpsertBudgetRequest is the body of PUT /v1/budgets/:period. Amounts are decimal strings;
// omitted fields are stored as absent.
type UpsertBudgetRequest struct {
	PlannedIncome  *string `json:"planned_income,omitempty"`
	PlannedExpense *string `json:"planned_expense,omitempty"`
	SavingsGoal    *string `json:"savings_goal,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// Validate checks if the budget request is valid.
func (r *UpsertBudgetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PlannedIncome, customValidation.Decimal, customValidation.NonNegativeAmount),
		validation.Field(&r.PlannedExpense, customValidation.Decimal, customValidation.NonNegativeAmount),
		validation.Field(&r.SavingsGoal, customValidation.Decimal, customValidation.NonNegativeAmount),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}

// ToInput converts a validated request into use case input.
func (r *UpsertBudgetRequest) ToInput() (usecase.BudgetInput, error) {
	input := usecase.BudgetInput{Notes: r.Notes}

	targets := []struct {
		src *string
		dst **decimal.Decimal
	}{
		{r.PlannedIncome, &input.PlannedIncome},
		{r.PlannedExpense, &input.PlannedExpense},
		{r.SavingsGoal, &input.SavingsGoal},
	}
	for _, t := range targets {
		if t.src == nil {
			continue
		}
		d, err := decimal.NewFromString(*t.src)
		if err != nil {
			return usecase.BudgetInput{}, err
		}
		*t.dst = &d
	}
	return input, nil
}
