// Package errx provides typed, coded errors shared by the gateways, the
// controllers and the development backend.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for display and handling purposes
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// ConnectionMessage is shown for transport failures where no response was received
const ConnectionMessage = "Unable to reach the server. Please check your connection and try again."

// Error is the coded error type used across the module
type Error struct {
	Code       string
	Type       Type
	Message    string
	HTTPStatus int
	Details    map[string]any
	Cause      error

	fromServer bool
}

// New creates an error without going through a registry
func New(code string, typ Type, httpStatus int, message string) *Error {
	return &Error{
		Code:       code,
		Type:       typ,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps err with a message and a type. Wrapping an *Error keeps its code.
func Wrap(err error, message string, typ Type) *Error {
	e := &Error{
		Code:       "INTERNAL_ERROR",
		Type:       typ,
		Message:    message,
		HTTPStatus: StatusForType(typ),
		Cause:      err,
	}
	var inner *Error
	if errors.As(err, &inner) {
		e.Code = inner.Code
		e.HTTPStatus = inner.HTTPStatus
	}
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value pair to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// FromServer reports whether the error was decoded from a backend response
func (e *Error) FromServer() bool {
	return e.fromServer
}

// Response is the JSON error body exchanged with the backend
type Response struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type,omitempty"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse renders the error as a response body
func (e *Error) ToHTTPResponse() Response {
	return Response{
		Error:   http.StatusText(e.HTTPStatus),
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err carries the given type
func IsType(err error, typ Type) bool {
	e, ok := As(err)
	return ok && e.Type == typ
}

// IsCode reports whether err carries the given code
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == string(code)
}

// TypeForStatus maps an HTTP status to an error type
func TypeForStatus(status int) Type {
	switch {
	case status == http.StatusUnauthorized:
		return TypeUnauthorized
	case status == http.StatusForbidden:
		return TypeAuthorization
	case status == http.StatusNotFound:
		return TypeNotFound
	case status == http.StatusConflict:
		return TypeConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return TypeValidation
	case status >= 400 && status < 500:
		return TypeBusiness
	default:
		return TypeInternal
	}
}

// StatusForType maps an error type to the HTTP status used when rendering it
func StatusForType(typ Type) int {
	switch typ {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text to show for err. Transport failures get the
// connection message, backend errors their own message verbatim, anything
// else the fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	e, ok := As(err)
	if !ok {
		return fallback
	}
	if e.Type == TypeExternal && !e.fromServer {
		return ConnectionMessage
	}
	if e.fromServer && e.Message != "" {
		return e.Message
	}
	return fallback
}
