package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// RegisterUserRequest defines the payload for creating a new account.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Name             string    `json:"name"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// ToUserResponse converts a domain.User to its public DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Name:             u.Name,
		Username:         u.Username,
		Email:            u.Email,
		RegistrationDate: u.CreatedAt,
	}
}
