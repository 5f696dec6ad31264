package interview

import (
	"net/url"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
)

// ScheduleInterviewRequest - DTO for scheduling an interview for an application
type ScheduleInterviewRequest struct {
	ApplicationID   kernel.ApplicationID `json:"application_id" validate:"required"`
	ScheduledAt     time.Time            `json:"scheduled_at" validate:"required"`
	DurationMinutes int                  `json:"duration_minutes" validate:"required,min=15,max=480"`
	Type            InterviewType        `json:"type" validate:"required,oneof=VIDEO PHONE ONSITE"`
	Location        string               `json:"location,omitempty" validate:"required_if=Type ONSITE,max=200"`
	MeetingURL      string               `json:"meeting_url,omitempty" validate:"required_if=Type VIDEO,omitempty,url"`
	Notes           string               `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateInterviewRequest - DTO for rescheduling or editing an interview
type UpdateInterviewRequest struct {
	ScheduledAt     *time.Time     `json:"scheduled_at,omitempty"`
	DurationMinutes *int           `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=480"`
	Type            *InterviewType `json:"type,omitempty" validate:"omitempty,oneof=VIDEO PHONE ONSITE"`
	Location        *string        `json:"location,omitempty" validate:"omitempty,max=200"`
	MeetingURL      *string        `json:"meeting_url,omitempty" validate:"omitempty,url"`
	Notes           *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CancelInterviewRequest - DTO for calling off an interview
type CancelInterviewRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// Filters narrows an interview list
type Filters struct {
	Status   InterviewStatus `json:"status,omitempty"`
	Upcoming *bool           `json:"upcoming,omitempty"`
}

// Merge returns f with every field set in o overriding it
func (f Filters) Merge(o Filters) Filters {
	f.Status = listx.Pick(f.Status, o.Status)
	f.Upcoming = listx.PickPtr(f.Upcoming, o.Upcoming)
	return f
}

// Encode writes the set filters as query parameters
func (f Filters) Encode(v url.Values) {
	listx.SetString(v, "status", string(f.Status))
	listx.SetBool(v, "upcoming", f.Upcoming)
}
