package devserver

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("API")

// Error codes
var (
	CodeForbidden   = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "You do not have permission to perform this action")
	CodeInvalidBody = ErrRegistry.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "The request body could not be read")
	CodeMissingFile = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "A file is required")
	CodeFileGone    = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
)

// Helper functions
func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrInvalidBody() *errx.Error {
	return ErrRegistry.New(CodeInvalidBody)
}

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileGone)
}
