// Package dto provides data transfer objects for expense HTTP requests and responses.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/allisson/fintrack/internal/expense/usecase"
	"github.com/allisson/fintrack/internal/period"
	customValidation "github.com/allisson/fintrack/internal/validation"
)

// ExpenseRequest is the body of create and update requests. Amounts travel as strings
// to keep their exact value and scale.
type ExpenseRequest struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Amount      string  `json:"amount"`
	Period      string  `json:"period,omitempty"`
	ExpenseDate string  `json:"expense_date,omitempty"`
}

// Validate checks if the expense request is valid.
func (r *ExpenseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Category,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Amount,
			validation.Required,
			customValidation.Decimal,
			customValidation.PositiveAmount,
		),
		validation.Field(&r.Period, customValidation.Period),
		validation.Field(&r.ExpenseDate, customValidation.Date),
	)
}

// ToInput converts a validated request into use case input.
func (r *ExpenseRequest) ToInput() (usecase.ExpenseInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.ExpenseInput{}, err
	}

	input := usecase.ExpenseInput{
		Category:    r.Category,
		Title:       r.Title,
		Description: r.Description,
		Amount:      amount,
		Period:      r.Period,
	}
	if r.ExpenseDate != "" {
		date, err := time.Parse(period.DateLayout, r.ExpenseDate)
		if err != nil {
			return usecase.ExpenseInput{}, err
		}
		input.ExpenseDate = &date
	}
	return input, nil
}
