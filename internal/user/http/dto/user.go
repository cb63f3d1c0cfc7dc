// Package dto holds the JSON shapes of the user endpoints.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fintrack/internal/user/domain"
	"github.com/allisson/fintrack/internal/user/usecase"
)

// RegisterUserRequest is the body of POST /v1/users.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects malformed registrations before they reach the use case.
func (r *RegisterUserRequest) Validate() error {
	return r.Input().Validate()
}

// Input converts the request to the use case input.
func (r RegisterUserRequest) Input() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// UserResponse is the public view of a user. Neither the password hash nor the wrapped
// data key leave the server.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	HasDataKey bool      `json:"has_data_key"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToUserResponse maps a domain user to its public view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		HasDataKey: user.HasWrappedDataKey(),
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
