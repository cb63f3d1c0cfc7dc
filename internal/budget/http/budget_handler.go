// Package http provides HTTP handlers for the monthly budgets of the authenticated user.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	"github.com/allisson/fintrack/internal/budget/http/dto"
	budgetUseCase "github.com/allisson/fintrack/internal/budget/usecase"
	"github.com/allisson/fintrack/internal/httputil"
	"github.com/allisson/fintrack/internal/period"
)

// BudgetHandler handles HTTP requests for budgets.
type BudgetHandler struct {
	budgetUseCase budgetUseCase.BudgetUseCase
	logger        *slog.Logger
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(useCase budgetUseCase.BudgetUseCase, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetUseCase: useCase,
		logger:        logger,
	}
}

// UpsertHandler creates or replaces the budget of a month.
// PUT /v1/budgets/:period - Returns 200 OK.
func (h *BudgetHandler) UpsertHandler(c *gin.Context) {
	userID, p, ok := h.identify(c)
	if !ok {
		return
	}

	var req dto.UpsertBudgetRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	budget, err := h.budgetUseCase.Upsert(c.Request.Context(), userID, p, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBudgetToResponse(budget))
}

// GetHandler returns the budget of a month.
// GET /v1/budgets/:period - Returns 200 OK.
func (h *BudgetHandler) GetHandler(c *gin.Context) {
	userID, p, ok := h.identify(c)
	if !ok {
		return
	}

	budget, err := h.budgetUseCase.Get(c.Request.Context(), userID, p)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBudgetToResponse(budget))
}

// ListHandler lists budgets, newest month first.
// GET /v1/budgets?offset=0&limit=50 - Returns 200 OK.
func (h *BudgetHandler) ListHandler(c *gin.Context) {
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

	budgets, err := h.budgetUseCase.List(c.Request.Context(), userID, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBudgetsToListResponse(budgets))
}

// DeleteHandler removes the budget of a month.
// DELETE /v1/budgets/:period - Returns 204 No Content.
func (h *BudgetHandler) DeleteHandler(c *gin.Context) {
	userID, p, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.budgetUseCase.Delete(c.Request.Context(), userID, p); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *BudgetHandler) identify(c *gin.Context) (uuid.UUID, time.Time, bool) {
	userID, err := authHTTP.UserID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return uuid.Nil, time.Time{}, false
	}

	p, err := period.Parse(c.Param("period"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid period parameter: %w", err), h.logger)
		return uuid.Nil, time.Time{}, false
	}
	return userID, p, true
}
