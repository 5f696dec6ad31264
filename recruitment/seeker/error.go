package seeker

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SEEKER")

// Error codes
var (
	CodeProfileNotFound     = ErrRegistry.Register("PROFILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeSkillNotFound       = ErrRegistry.Register("SKILL_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Skill not found")
	CodeExperienceNotFound  = ErrRegistry.Register("EXPERIENCE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Experience entry not found")
	CodeEducationNotFound   = ErrRegistry.Register("EDUCATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Education entry not found")
	CodeFileTooLarge        = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "File exceeds the 10MB limit")
	CodeUnsupportedFileType = ErrRegistry.Register("UNSUPPORTED_FILE_TYPE", errx.TypeValidation, http.StatusUnsupportedMediaType, "Only PDF, JPEG, PNG and WebP files are accepted")
	CodeInvalidPDF          = ErrRegistry.Register("INVALID_PDF", errx.TypeValidation, http.StatusBadRequest, "The PDF could not be read")
	CodeTooManyPages        = ErrRegistry.Register("TOO_MANY_PAGES", errx.TypeValidation, http.StatusBadRequest, "The resume must have between 1 and 10 pages")
	CodeFileReadFailed      = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not read the file")
)

// Helper functions
func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrSkillNotFound() *errx.Error {
	return ErrRegistry.New(CodeSkillNotFound)
}

func ErrExperienceNotFound() *errx.Error {
	return ErrRegistry.New(CodeExperienceNotFound)
}

func ErrEducationNotFound() *errx.Error {
	return ErrRegistry.New(CodeEducationNotFound)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrUnsupportedFileType() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFileType)
}

func ErrInvalidPDF() *errx.Error {
	return ErrRegistry.New(CodeInvalidPDF)
}

func ErrTooManyPages() *errx.Error {
	return ErrRegistry.New(CodeTooManyPages)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}
