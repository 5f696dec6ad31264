package auth

import "context"

// Gateway is the backend's authentication API
type Gateway interface {
	// Register creates an account and signs it in
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login exchanges credentials for a token
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// RefreshToken issues a fresh token for the current session
	RefreshToken(ctx context.Context) (string, error)

	// ForgotPassword sends a reset link to the email
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword sets a new password using a reset token
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Me returns the user owning the current token
	Me(ctx context.Context) (*User, error)
}
