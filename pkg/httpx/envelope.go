package httpx

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Envelope is the documented success body of the API:
//
//	{"success": true, "data": <payload>, "message": "...", "meta": {...}}
//
// Legacy endpoints answer with the bare payload instead. Decode accepts both,
// so call sites never probe alternative shapes.
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Meta    *kernel.Page    `json:"meta,omitempty"`
}

// pageSetter is implemented by list payloads that take the envelope meta
type pageSetter interface {
	SetPage(kernel.Page)
}

// Decode unmarshals a response body into out, unwrapping the envelope when
// present. The "success" key is the discriminant.
func Decode(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	if body[0] == '{' {
		var env Envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Success != nil {
			if !*env.Success {
				return errors.New("envelope reports failure: " + env.Message)
			}
			if len(env.Data) == 0 || string(env.Data) == "null" {
				return nil
			}
			if err := json.Unmarshal(env.Data, out); err != nil {
				return err
			}
			if ps, ok := out.(pageSetter); ok && env.Meta != nil {
				ps.SetPage(*env.Meta)
			}
			return nil
		}
	}
	return json.Unmarshal(body, out)
}
