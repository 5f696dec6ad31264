package job

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"     // Created but not published
	JobStatusPublished JobStatus = "PUBLISHED" // Active and accepting applications
	JobStatusClosed    JobStatus = "CLOSED"    // No longer accepting applications
	JobStatusArchived  JobStatus = "ARCHIVED"  // Archived
)

// Job is a posting as seen by the client. IsSaved and HasApplied are
// relative to the signed-in job seeker.
type Job struct {
	ID               kernel.JobID            `json:"id"`
	Title            kernel.JobTitle         `json:"title"`
	Description      kernel.JobDescription   `json:"description"`
	CompanyID        kernel.CompanyID        `json:"company_id"`
	CompanyName      kernel.CompanyName      `json:"company_name"`
	Location         string                  `json:"location"`
	EmploymentType   kernel.EmploymentType   `json:"employment_type"`
	ExperienceLevel  kernel.ExperienceLevel  `json:"experience_level"`
	SalaryMin        *float64                `json:"salary_min,omitempty"`
	SalaryMax        *float64                `json:"salary_max,omitempty"`
	Currency         string                  `json:"currency,omitempty"`
	IsRemote         bool                    `json:"is_remote"`
	Requirements     []kernel.JobRequirement `json:"requirements"`
	Benefits         []kernel.JobBenefit     `json:"benefits"`
	Skills           []string                `json:"skills"`
	Status           JobStatus               `json:"status"`
	IsActive         bool                    `json:"is_active"`
	IsSaved          bool                    `json:"is_saved"`
	HasApplied       bool                    `json:"has_applied"`
	ApplicationCount int                     `json:"application_count"`
	PostedBy         kernel.UserID           `json:"posted_by"`
	Deadline         *time.Time              `json:"deadline,omitempty"`
	PublishedAt      *time.Time              `json:"published_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ItemID identifies the job inside list controllers
func (j Job) ItemID() string {
	return j.ID.String()
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPublished checks if the job is currently published
func (j *Job) IsPublished() bool {
	return j.Status == JobStatusPublished
}

// IsArchived checks if the job is archived
func (j *Job) IsArchived() bool {
	return j.Status == JobStatusArchived
}

// IsClosed checks if the job is closed
func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// CanBeEdited checks if a job can be edited
func (j *Job) CanBeEdited() bool {
	return !j.IsArchived()
}

// AcceptsApplications checks if a job seeker may still apply
func (j *Job) AcceptsApplications(now time.Time) bool {
	if !j.IsPublished() || !j.IsActive {
		return false
	}
	return j.Deadline == nil || now.Before(*j.Deadline)
}

// CanApply checks if the signed-in job seeker can apply
func (j *Job) CanApply(now time.Time) bool {
	return !j.HasApplied && j.AcceptsApplications(now)
}

// SalaryRange renders the salary for display, or "" when unknown
func (j *Job) SalaryRange() string {
	cur := j.Currency
	if cur == "" {
		cur = "USD"
	}
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("%s %.0f - %.0f", cur, *j.SalaryMin, *j.SalaryMax)
	case j.SalaryMin != nil:
		return fmt.Sprintf("from %s %.0f", cur, *j.SalaryMin)
	case j.SalaryMax != nil:
		return fmt.Sprintf("up to %s %.0f", cur, *j.SalaryMax)
	default:
		return ""
	}
}
