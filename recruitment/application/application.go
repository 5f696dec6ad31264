package application

import (
	"slices"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "PENDING"      // Submitted, not yet opened
	ApplicationStatusReviewing    ApplicationStatus = "REVIEWING"    // Being reviewed
	ApplicationStatusShortlisted  ApplicationStatus = "SHORTLISTED"  // Passed initial review
	ApplicationStatusInterviewing ApplicationStatus = "INTERVIEWING" // In interview process
	ApplicationStatusOffered      ApplicationStatus = "OFFERED"      // Offer extended
	ApplicationStatusHired        ApplicationStatus = "HIRED"        // Offer accepted
	ApplicationStatusRejected     ApplicationStatus = "REJECTED"     // Rejected by the employer
	ApplicationStatusWithdrawn    ApplicationStatus = "WITHDRAWN"    // Withdrawn by the job seeker
)

// AllStatuses lists every status in pipeline order
var AllStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewing,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewing,
	ApplicationStatusOffered,
	ApplicationStatusHired,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

// IsValid reports whether s is a known status
func (s ApplicationStatus) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// Application as seen by the job seeker who sent it or the employer reviewing it
type Application struct {
	ID              kernel.ApplicationID `json:"id"`
	JobID           kernel.JobID         `json:"job_id"`
	JobTitle        kernel.JobTitle      `json:"job_title"`
	CompanyName     kernel.CompanyName   `json:"company_name"`
	ApplicantID     kernel.UserID        `json:"applicant_id"`
	ApplicantName   string               `json:"applicant_name"`
	ApplicantEmail  kernel.Email         `json:"applicant_email"`
	CoverLetter     string               `json:"cover_letter,omitempty"`
	ResumeURL       kernel.FileURL       `json:"resume_url,omitempty"`
	Status          ApplicationStatus    `json:"status"`
	Rating          *int                 `json:"rating,omitempty"`
	EmployerNotes   string               `json:"employer_notes,omitempty"`
	StatusChangedAt *time.Time           `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ItemID identifies the application inside list controllers
func (a Application) ItemID() string {
	return a.ID.String()
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsClosed checks if the application reached a final state
func (a *Application) IsClosed() bool {
	return a.Status == ApplicationStatusHired ||
		a.Status == ApplicationStatusRejected ||
		a.Status == ApplicationStatusWithdrawn
}

// IsActive checks if the application is still in the pipeline
func (a *Application) IsActive() bool {
	return !a.IsClosed()
}

// CanWithdraw checks if the job seeker may still withdraw
func (a *Application) CanWithdraw() bool {
	switch a.Status {
	case ApplicationStatusPending, ApplicationStatusReviewing,
		ApplicationStatusShortlisted, ApplicationStatusInterviewing:
		return true
	default:
		return false
	}
}

// CanScheduleInterview checks if an employer may schedule an interview
func (a *Application) CanScheduleInterview() bool {
	return a.Status == ApplicationStatusShortlisted || a.Status == ApplicationStatusInterviewing
}

// CanUpdateStatus checks if the employer may move the application to newStatus
func (a *Application) CanUpdateStatus(newStatus ApplicationStatus) bool {
	validTransitions := map[ApplicationStatus][]ApplicationStatus{
		ApplicationStatusPending: {
			ApplicationStatusReviewing,
			ApplicationStatusShortlisted,
			ApplicationStatusRejected,
		},
		ApplicationStatusReviewing: {
			ApplicationStatusShortlisted,
			ApplicationStatusRejected,
		},
		ApplicationStatusShortlisted: {
			ApplicationStatusInterviewing,
			ApplicationStatusRejected,
		},
		ApplicationStatusInterviewing: {
			ApplicationStatusOffered,
			ApplicationStatusRejected,
		},
		ApplicationStatusOffered: {
			ApplicationStatusHired,
			ApplicationStatusRejected,
		},
	}

	allowedStatuses, ok := validTransitions[a.Status]
	if !ok {
		return false // Final states have no transitions
	}

	return slices.Contains(allowedStatuses, newStatus)
}

// NextStatuses lists the statuses the employer may move the application to
func (a *Application) NextStatuses() []ApplicationStatus {
	var out []ApplicationStatus
	for _, s := range AllStatuses {
		if a.CanUpdateStatus(s) {
			out = append(out, s)
		}
	}
	return out
}
