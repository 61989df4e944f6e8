package dto

import (
	"time"

	"github.com/funify/funify-api/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,max=72"`
	Name     string  `json:"name" validate:"required,max=255"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UpdateUserRequest is a partial profile update.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	IsCreator *bool   `json:"is_creator"`
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Avatar: r.Avatar, Bio: r.Bio, IsCreator: r.IsCreator}
}
