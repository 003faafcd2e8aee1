package dto

import (
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
)

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Company  *CompanyPayload `json:"company,omitempty"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest defines the data allowed for updating the current user.
// Pointers differentiate omitted fields from zero values.
type UpdateProfileRequest struct {
	Name    *string         `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Email   *string         `json:"email,omitempty" binding:"omitempty,email"`
	Company *CompanyPayload `json:"company,omitempty"`
}

// ChangePasswordRequest is the body of PUT /users/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Company   CompanyPayload `json:"company"`
	Role      string         `json:"role"`
	IsActive  bool           `json:"isActive"`
	LastLogin *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Company:   CompanyPayload(user.Company),
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLoginAt,
		CreatedAt: user.CreatedAt,
	}
}
