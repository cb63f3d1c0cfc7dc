package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	"github.com/allisson/fintrack/internal/user/domain"
	"github.com/allisson/fintrack/internal/user/http/dto"
	"github.com/allisson/fintrack/internal/user/usecase"
	"github.com/allisson/fintrack/internal/user/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*UserHandler, *mocks.MockUserUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockUserUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	return NewUserHandler(mockUseCase, slog.New(slog.NewTextHandler(io.Discard, nil))), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestUserHandler_RegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		req := dto.RegisterUserRequest{Name: "Jane", Email: "jane@example.com", Password: "SecurePass123!"}
		user := &domain.User{
			ID:             uuid.Must(uuid.NewV7()),
			Name:           "Jane",
			Email:          "jane@example.com",
			Password:       "hashed",
			WrappedDataKey: "d3JhcHBlZA==",
		}

		mockUseCase.On("RegisterUser", mock.Anything, usecase.RegisterUserInput{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "SecurePass123!",
		}).Return(user, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/users", req)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "hashed")
		assert.NotContains(t, w.Body.String(), "d3JhcHBlZA==")

		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.ID)
		assert.True(t, response.HasDataKey)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users", dto.RegisterUserRequest{Name: "Jane"})
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Conflict", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("RegisterUser", mock.Anything, mock.Anything).Return(nil, domain.ErrUserAlreadyExists).Once()

		c, w := createTestContext(http.MethodPost, "/v1/users", dto.RegisterUserRequest{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "SecurePass123!",
		})
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUserHandler_MeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Name: "Jane", Email: "jane@example.com"}

		c, w := createTestContext(http.MethodGet, "/v1/users/me", nil)
		c.Request = c.Request.WithContext(authHTTP.WithUser(c.Request.Context(), user))
		handler.MeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "jane@example.com")
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/users/me", nil)
		handler.MeHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
