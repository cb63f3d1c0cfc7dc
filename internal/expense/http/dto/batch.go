package dto

import (
	"fmt"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/expense/usecase"
	customValidation "github.com/allisson/fintrack/internal/validation"
)

// BatchCreateRequest is the body of POST /v1/expenses/batch.
type BatchCreateRequest struct {
	// DefaultPeriod applies to expenses that carry neither a period nor an expense date.
	DefaultPeriod string            `json:"default_period,omitempty"`
	Expenses      []*ExpenseRequest `json:"expenses"`
}

// Validate checks the batch and every expense in it.
func (r *BatchCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DefaultPeriod, customValidation.Period),
		validation.Field(&r.Expenses,
			validation.Required,
			validation.Length(1, domain.MaxBatchSize),
			validation.Each(validation.NotNil),
		),
	)
}

// ToInputs converts a validated batch into use case inputs.
func (r *BatchCreateRequest) ToInputs() ([]usecase.ExpenseInput, error) {
	inputs := make([]usecase.ExpenseInput, 0, len(r.Expenses))
	for i, req := range r.Expenses {
		input, err := req.ToInput()
		if err != nil {
			return nil, fmt.Errorf("expenses.%d: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// ExpenseUpdateRequest is one entry of a bulk update: the expense ID plus its full
// replacement fields.
type ExpenseUpdateRequest struct {
	ID string `json:"id"`
	ExpenseRequest
}

// Validate checks the ID and the replacement fields.
func (r *ExpenseUpdateRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.UUID),
	); err != nil {
		return err
	}
	return r.ExpenseRequest.Validate()
}

// BatchUpdateRequest is the body of PUT /v1/expenses/bulk.
type BatchUpdateRequest struct {
	Records []*ExpenseUpdateRequest `json:"records"`
}

// Validate checks the batch and every record in it.
func (r *BatchUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Records,
			validation.Required,
			validation.Length(1, domain.MaxBatchSize),
			validation.Each(validation.NotNil),
		),
	)
}

// ToUpdates converts a validated batch into use case updates.
func (r *BatchUpdateRequest) ToUpdates() ([]usecase.ExpenseUpdate, error) {
	updates := make([]usecase.ExpenseUpdate, 0, len(r.Records))
	for i, rec := range r.Records {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("records.%d: %w", i, err)
		}
		input, err := rec.ToInput()
		if err != nil {
			return nil, fmt.Errorf("records.%d: %w", i, err)
		}
		updates = append(updates, usecase.ExpenseUpdate{ID: id, Input: input})
	}
	return updates, nil
}

// BulkIDRequest is the body of POST /v1/expenses/bulk-delete.
type BulkIDRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks that at least one well-formed ID is present.
func (r *BulkIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDs,
			validation.Required,
			validation.Length(1, domain.MaxBatchSize),
			validation.Each(validation.Required, customValidation.UUID),
		),
	)
}

// ToIDs parses the validated IDs.
func (r *BulkIDRequest) ToIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.IDs))
	for _, s := range r.IDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
