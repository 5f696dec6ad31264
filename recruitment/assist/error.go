package assist

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ASSIST")

// Error codes
var (
	CodeUnavailable = ErrRegistry.Register("UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "The assistant is not available right now")
	CodeNoResume    = ErrRegistry.Register("NO_RESUME", errx.TypeBusiness, http.StatusUnprocessableEntity, "Upload a resume first")
)

// Helper functions
func ErrUnavailable() *errx.Error {
	return ErrRegistry.New(CodeUnavailable)
}

func ErrNoResume() *errx.Error {
	return ErrRegistry.New(CodeNoResume)
}
