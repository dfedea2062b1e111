package dto

import (
	"time"

	"github.com/spec-kit/tramites-portal/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProviderLoginRequest payload for federated sign-in. The identity
// assertion itself is validated at the edge; this carries its claims.
type ProviderLoginRequest struct {
	Provider    string `json:"provider"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Providers   []string  `json:"providers"`
	IsOnline    bool      `json:"is_online"`
	LastLogin   time.Time `json:"last_login,omitempty"`
	LastLogout  time.Time `json:"last_logout,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
		Providers:   u.Providers,
		IsOnline:    u.IsOnline,
		LastLogin:   u.LastLogin,
		LastLogout:  u.LastLogout,
	}
}
