// Package http provides HTTP handlers for expense records of the authenticated user.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	"github.com/allisson/fintrack/internal/expense/domain"
	"github.com/allisson/fintrack/internal/expense/http/dto"
	expenseUseCase "github.com/allisson/fintrack/internal/expense/usecase"
	"github.com/allisson/fintrack/internal/httputil"
	"github.com/allisson/fintrack/internal/period"
)

// ExpenseHandler handles HTTP requests for expense records.
type ExpenseHandler struct {
	expenseUseCase expenseUseCase.ExpenseUseCase
	logger         *slog.Logger
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(useCase expenseUseCase.ExpenseUseCase, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUseCase: useCase,
		logger:         logger,
	}
}

// CreateHandler creates an expense.
// POST /v1/expenses - Returns 201 Created.
func (h *ExpenseHandler) CreateHandler(c *gin.Context) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseUseCase.Create(c.Request.Context(), userID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapExpenseToResponse(expense))
}

// GetHandler returns one expense.
// GET /v1/expenses/:id - Returns 200 OK.
func (h *ExpenseHandler) GetHandler(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	expense, err := h.expenseUseCase.Get(c.Request.Context(), userID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExpenseToResponse(expense))
}

// ListHandler lists expenses, optionally restricted to one month.
// GET /v1/expenses?period=yyyy-MM&offset=0&limit=50 - Returns 200 OK.
func (h *ExpenseHandler) ListHandler(c *gin.Context) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := domain.ListFilter{Offset: page.Offset, Limit: page.Limit}
	if value := c.Query("period"); value != "" {
		start, err := period.Parse(value)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid period parameter: %w", err), h.logger)
			return
		}
		filter.Period = &start
	}

	expenses, err := h.expenseUseCase.List(c.Request.Context(), userID, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExpensesToListResponse(expenses))
}

// UpdateHandler replaces the fields of an expense.
// PUT /v1/expenses/:id - Returns 200 OK.
func (h *ExpenseHandler) UpdateHandler(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseUseCase.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExpenseToResponse(expense))
}

// DeleteHandler removes an expense.
// DELETE /v1/expenses/:id - Returns 204 No Content.
func (h *ExpenseHandler) DeleteHandler(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.expenseUseCase.Delete(c.Request.Context(), userID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// CreateBatchHandler creates several expenses in one transaction.
// POST /v1/expenses/batch - Returns 201 Created.
func (h *ExpenseHandler) CreateBatchHandler(c *gin.Context) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.BatchCreateRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}
	inputs, err := req.ToInputs()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	expenses, err := h.expenseUseCase.CreateBatch(c.Request.Context(), userID, req.DefaultPeriod, inputs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapExpensesToListResponse(expenses))
}

// UpdateBatchHandler replaces several expenses in one transaction.
// PUT /v1/expenses/bulk - Returns 200 OK.
func (h *ExpenseHandler) UpdateBatchHandler(c *gin.Context) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.BatchUpdateRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}
	updates, err := req.ToUpdates()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	expenses, err := h.expenseUseCase.UpdateBatch(c.Request.Context(), userID, updates)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExpensesToListResponse(expenses))
}

// DeleteBatchHandler removes several expenses in one transaction.
// POST /v1/expenses/bulk-delete - Returns 204 No Content.
func (h *ExpenseHandler) DeleteBatchHandler(c *gin.Context) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.BulkIDRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}
	ids, err := req.ToIDs()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.expenseUseCase.DeleteBatch(c.Request.Context(), userID, ids); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *ExpenseHandler) identify(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid expense id"), h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *ExpenseHandler) bindInput(c *gin.Context) (expenseUseCase.ExpenseInput, bool) {
	var req dto.ExpenseRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return expenseUseCase.ExpenseInput{}, false
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return expenseUseCase.ExpenseInput{}, false
	}
	return input, true
}
