package dto

import (
	"time"

	"github.com/spec-kit/sla-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is a user without credential material.
type UserResponse struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Department string      `json:"department"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// LoginResponse wraps the authenticated user and its bearer token.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// UserRef carries the display fields resolved in read-time joins.
type UserRef struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Department string `json:"department"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Department: user.Department,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// NewUserRef maps a domain user to its display reference.
func NewUserRef(user *domain.User) *UserRef {
	if user == nil {
		return nil
	}
	return &UserRef{
		ID:         user.ID,
		Username:   user.Username,
		Department: user.Department,
	}
}

// DepartmentResponse is one reference-list entry.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
