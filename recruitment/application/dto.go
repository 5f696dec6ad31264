package application

import (
	"net/url"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
)

// SubmitApplicationRequest - DTO for applying to a job
type SubmitApplicationRequest struct {
	JobID       kernel.JobID   `json:"job_id" validate:"required"`
	CoverLetter string         `json:"cover_letter,omitempty" validate:"max=5000"`
	ResumeURL   kernel.FileURL `json:"resume_url,omitempty" validate:"omitempty,url"`
}

// UpdateStatusRequest - DTO for an employer moving an application along
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=PENDING REVIEWING SHORTLISTED INTERVIEWING OFFERED HIRED REJECTED"`
	Notes  string            `json:"notes,omitempty" validate:"max=2000"`
}

// RateApplicationRequest - DTO for an employer rating an applicant
type RateApplicationRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Notes  string `json:"notes,omitempty" validate:"max=2000"`
}

// Filters narrows an application list
type Filters struct {
	Status ApplicationStatus `json:"status,omitempty"`
	Search string            `json:"search,omitempty"`
}

// Merge returns f with every field set in o overriding it
func (f Filters) Merge(o Filters) Filters {
	f.Status = listx.Pick(f.Status, o.Status)
	f.Search = listx.Pick(f.Search, o.Search)
	return f
}

// Encode writes the set filters as query parameters
func (f Filters) Encode(v url.Values) {
	listx.SetString(v, "status", string(f.Status))
	listx.SetString(v, "search", f.Search)
}

// Response type alias for paginated applications
type PaginatedApplications = kernel.Paginated[Application]
