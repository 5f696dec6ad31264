package auth

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid email or password")
	CodeEmailTaken         = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "An account with this email already exists")
	CodeNotAuthenticated   = ErrRegistry.Register("NOT_AUTHENTICATED", errx.TypeUnauthorized, http.StatusUnauthorized, "You are not signed in")
	CodeSessionExpired     = ErrRegistry.Register("SESSION_EXPIRED", errx.TypeUnauthorized, http.StatusUnauthorized, "Your session has expired, please sign in again")
	CodeInvalidResetToken  = ErrRegistry.Register("INVALID_RESET_TOKEN", errx.TypeValidation, http.StatusBadRequest, "Reset link is invalid or expired")
	CodeStorageFailed      = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to persist the session")
)

// Helper functions
func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}

func ErrNotAuthenticated() *errx.Error {
	return ErrRegistry.New(CodeNotAuthenticated)
}

func ErrSessionExpired() *errx.Error {
	return ErrRegistry.New(CodeSessionExpired)
}

func ErrInvalidResetToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidResetToken)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}
