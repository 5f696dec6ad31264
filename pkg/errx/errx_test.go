package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

var (
	testRegistry = errx.NewRegistry("TEST")
	codeMissing  = testRegistry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")
)

func TestFromHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType errx.Type
		wantCode string
		wantMsg  string
	}{
		{
			name:     "backend error body",
			status:   http.StatusConflict,
			body:     `{"error":"Conflict","type":"CONFLICT","code":"JOB_ALREADY_SAVED","message":"Job already saved"}`,
			wantType: errx.TypeConflict,
			wantCode: "JOB_ALREADY_SAVED",
			wantMsg:  "Job already saved",
		},
		{
			name:     "type follows status not body",
			status:   http.StatusUnauthorized,
			body:     `{"type":"VALIDATION","code":"AUTH_TOKEN_EXPIRED","message":"Session expired"}`,
			wantType: errx.TypeUnauthorized,
			wantCode: "AUTH_TOKEN_EXPIRED",
			wantMsg:  "Session expired",
		},
		{
			name:     "error field used as message",
			status:   http.StatusBadRequest,
			body:     `{"error":"email is required"}`,
			wantType: errx.TypeValidation,
			wantCode: "HTTP_BAD_REQUEST",
			wantMsg:  "email is required",
		},
		{
			name:     "non json body",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantType: errx.TypeInternal,
			wantCode: "HTTP_BAD_GATEWAY",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errx.FromHTTPResponse(tt.status, []byte(tt.body))
			if e.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", e.Type, tt.wantType)
			}
			if e.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", e.Code, tt.wantCode)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMsg)
			}
			if !e.FromServer() {
				t.Error("decoded errors come from the server")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	const fallback = "Something went wrong"
	serverErr := errx.FromHTTPResponse(http.StatusUnprocessableEntity, []byte(`{"message":"Applications are closed"}`))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "server message verbatim", err: serverErr, want: "Applications are closed"},
		{name: "wrapped server error", err: fmt.Errorf("apply: %w", serverErr), want: "Applications are closed"},
		{name: "server error without message", err: errx.FromHTTPResponse(http.StatusInternalServerError, nil), want: fallback},
		{name: "transport", err: errx.Transport(errors.New("connection refused")), want: errx.ConnectionMessage},
		{name: "local coded error", err: testRegistry.New(codeMissing), want: fallback},
		{name: "plain error", err: errors.New("boom"), want: fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errx.UserMessage(tt.err, fallback); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	e := testRegistry.New(codeMissing).WithDetail("id", "42")
	if e.Code != "TEST_MISSING" || e.HTTPStatus != http.StatusNotFound {
		t.Errorf("New() = %+v", e)
	}
	if !errx.IsCode(fmt.Errorf("lookup: %w", e), codeMissing) {
		t.Error("IsCode should see through wrapping")
	}
	if !errx.IsType(e, errx.TypeNotFound) {
		t.Error("IsType(TypeNotFound) = false")
	}
	if e.Details["id"] != "42" {
		t.Errorf("Details = %v", e.Details)
	}

	unknown := testRegistry.New("TEST_NOPE")
	if unknown.Type != errx.TypeInternal {
		t.Errorf("unregistered code type = %s", unknown.Type)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	testRegistry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "again")
}

func TestWrapKeepsCode(t *testing.T) {
	inner := testRegistry.New(codeMissing)
	wrapped := errx.Wrap(inner, "could not load", errx.TypeInternal)
	if wrapped.Code != string(codeMissing) || wrapped.HTTPStatus != http.StatusNotFound {
		t.Errorf("Wrap() = %+v", wrapped)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("Wrap() should keep the cause")
	}

	plain := errx.Wrap(errors.New("disk full"), "could not save", errx.TypeExternal)
	if plain.HTTPStatus != http.StatusBadGateway {
		t.Errorf("HTTPStatus = %d, want 502", plain.HTTPStatus)
	}
}

func TestStatusTypeRoundTrip(t *testing.T) {
	for _, typ := range []errx.Type{
		errx.TypeValidation, errx.TypeNotFound, errx.TypeConflict,
		errx.TypeAuthorization, errx.TypeUnauthorized,
	} {
		if got := errx.TypeForStatus(errx.StatusForType(typ)); got != typ {
			t.Errorf("TypeForStatus(StatusForType(%s)) = %s", typ, got)
		}
	}
}
