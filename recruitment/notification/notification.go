package notification

import (
	"encoding/json"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// NotificationType says what triggered a notification
type NotificationType string

const (
	TypeApplicationUpdate NotificationType = "APPLICATION_UPDATE"
	TypeNewApplication    NotificationType = "NEW_APPLICATION"
	TypeInterview         NotificationType = "INTERVIEW"
	TypeJobMatch          NotificationType = "JOB_MATCH"
	TypeSystem            NotificationType = "SYSTEM"
)

// Notification delivered to the signed-in user
type Notification struct {
	ID        kernel.NotificationID `json:"id"`
	Type      NotificationType      `json:"type"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Link      string                `json:"link,omitempty"`
	Data      json.RawMessage       `json:"data,omitempty"`
	IsRead    bool                  `json:"is_read"`
	CreatedAt time.Time             `json:"created_at"`
}

// ItemID identifies the notification inside list controllers
func (n Notification) ItemID() string {
	return n.ID.String()
}

// UnreadCount is the badge counter
type UnreadCount struct {
	Count int `json:"count"`
}
