package notification

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFICATION")

// Error codes
var (
	CodeNotificationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeInvalidPollSpec      = ErrRegistry.Register("INVALID_POLL_SPEC", errx.TypeValidation, http.StatusBadRequest, "Invalid polling schedule")
)

// Helper functions
func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrInvalidPollSpec() *errx.Error {
	return ErrRegistry.New(CodeInvalidPollSpec)
}
