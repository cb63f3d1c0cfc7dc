// Package http serves registration and the current-user endpoint.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/httputil"
	"github.com/allisson/fintrack/internal/user/http/dto"
	"github.com/allisson/fintrack/internal/user/usecase"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, logger: logger}
}

// RegisterHandler serves POST /v1/users. It is public and answers 201 with the new user.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), req.Input())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// MeHandler serves GET /v1/users/me from the user resolved by the auth middleware.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
