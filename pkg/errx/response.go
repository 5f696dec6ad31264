package errx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// FromHTTPResponse decodes a non-2xx backend response into an *Error. The
// type always follows the status code so that a 401 is recognised whatever
// the body says.
func FromHTTPResponse(status int, body []byte) *Error {
	e := &Error{
		Code:       "HTTP_" + strings.ReplaceAll(strings.ToUpper(http.StatusText(status)), " ", "_"),
		Type:       TypeForStatus(status),
		HTTPStatus: status,
		fromServer: true,
	}

	var resp Response
	if len(body) > 0 && json.Unmarshal(body, &resp) == nil {
		if resp.Code != "" {
			e.Code = resp.Code
		}
		e.Details = resp.Details
		switch {
		case resp.Message != "":
			e.Message = resp.Message
		case resp.Error != "" && resp.Error != http.StatusText(status):
			e.Message = resp.Error
		}
	}
	return e
}

// Transport wraps a failure where no response was received
func Transport(err error) *Error {
	return &Error{
		Code:       "TRANSPORT_ERROR",
		Type:       TypeExternal,
		Message:    ConnectionMessage,
		HTTPStatus: 0,
		Cause:      err,
	}
}
