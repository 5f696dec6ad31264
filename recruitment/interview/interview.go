package interview

import (
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// InterviewType is how the interview takes place
type InterviewType string

const (
	InterviewTypeVideo  InterviewType = "VIDEO"
	InterviewTypePhone  InterviewType = "PHONE"
	InterviewTypeOnsite InterviewType = "ONSITE"
)

// InterviewStatus represents the lifecycle of an interview
type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "SCHEDULED"
	InterviewStatusRescheduled InterviewStatus = "RESCHEDULED"
	InterviewStatusCompleted   InterviewStatus = "COMPLETED"
	InterviewStatusCancelled   InterviewStatus = "CANCELLED"
)

// Interview between an employer and an applicant
type Interview struct {
	ID              kernel.InterviewID   `json:"id"`
	ApplicationID   kernel.ApplicationID `json:"application_id"`
	JobID           kernel.JobID         `json:"job_id"`
	JobTitle        kernel.JobTitle      `json:"job_title"`
	CompanyName     kernel.CompanyName   `json:"company_name"`
	CandidateID     kernel.UserID        `json:"candidate_id"`
	CandidateName   string               `json:"candidate_name"`
	ScheduledAt     time.Time            `json:"scheduled_at"`
	DurationMinutes int                  `json:"duration_minutes"`
	Type            InterviewType        `json:"type"`
	Location        string               `json:"location,omitempty"`
	MeetingURL      string               `json:"meeting_url,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	Status          InterviewStatus      `json:"status"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ItemID identifies the interview inside list controllers
func (i Interview) ItemID() string {
	return i.ID.String()
}

// ============================================================================
// Domain Methods
// ============================================================================

// EndsAt returns the scheduled end time
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// IsCancelled checks if the interview was called off
func (i *Interview) IsCancelled() bool {
	return i.Status == InterviewStatusCancelled
}

// IsUpcoming checks if the interview is still ahead
func (i *Interview) IsUpcoming(now time.Time) bool {
	return !i.IsCancelled() && i.Status != InterviewStatusCompleted && i.ScheduledAt.After(now)
}

// CanBeChanged checks if the interview may be rescheduled or cancelled
func (i *Interview) CanBeChanged() bool {
	return i.Status == InterviewStatusScheduled || i.Status == InterviewStatusRescheduled
}
