package auth

import "github.com/Abraxas-365/hireboard/pkg/kernel"

// RegisterRequest - DTO for creating an account
type RegisterRequest struct {
	Email       kernel.Email       `json:"email" validate:"required,email"`
	Password    string             `json:"password" validate:"required,min=8,max=72"`
	FirstName   kernel.FirstName   `json:"first_name" validate:"required,max=50"`
	LastName    kernel.LastName    `json:"last_name" validate:"required,max=50"`
	Role        kernel.Role        `json:"role" validate:"required,oneof=JOB_SEEKER EMPLOYER"`
	CompanyName kernel.CompanyName `json:"company_name,omitempty" validate:"required_if=Role EMPLOYER,max=100"`
}

// LoginRequest - DTO for signing in
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required"`
}

// AuthResponse - token and user returned by login and register
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RefreshTokenResponse - DTO returned by the token refresh endpoint
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest - DTO for requesting a reset link
type ForgotPasswordRequest struct {
	Email kernel.Email `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - DTO for setting a new password with a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// MessageResponse - DTO for endpoints answering with a message only
type MessageResponse struct {
	Message string `json:"message"`
}
