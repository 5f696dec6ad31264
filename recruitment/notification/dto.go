package notification

import (
	"net/url"

	"github.com/Abraxas-365/hireboard/pkg/listx"
)

// Filters narrows the inbox
type Filters struct {
	Type       NotificationType `json:"type,omitempty"`
	UnreadOnly *bool            `json:"unread_only,omitempty"`
}

// Merge returns f with every field set in o overriding it
func (f Filters) Merge(o Filters) Filters {
	f.Type = listx.Pick(f.Type, o.Type)
	f.UnreadOnly = listx.PickPtr(f.UnreadOnly, o.UnreadOnly)
	return f
}

// Encode writes the set filters as query parameters
func (f Filters) Encode(v url.Values) {
	listx.SetString(v, "type", string(f.Type))
	listx.SetBool(v, "unread_only", f.UnreadOnly)
}
