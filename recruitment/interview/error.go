package interview

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("INTERVIEW")

// Error codes
var (
	CodeInterviewNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview not found")
	CodeCannotChange      = ErrRegistry.Register("CANNOT_CHANGE", errx.TypeBusiness, http.StatusConflict, "Interview can no longer be changed")
	CodeSlotTaken         = ErrRegistry.Register("SLOT_TAKEN", errx.TypeConflict, http.StatusConflict, "Another interview is scheduled at that time")
	CodeNotShortlisted    = ErrRegistry.Register("NOT_SHORTLISTED", errx.TypeBusiness, http.StatusBadRequest, "Only shortlisted applicants can be interviewed")
)

// Helper functions
func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrCannotChange() *errx.Error {
	return ErrRegistry.New(CodeCannotChange)
}

func ErrSlotTaken() *errx.Error {
	return ErrRegistry.New(CodeSlotTaken)
}

func ErrNotShortlisted() *errx.Error {
	return ErrRegistry.New(CodeNotShortlisted)
}
