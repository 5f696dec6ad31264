package job

import (
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job posting
type CreateJobRequest struct {
	Title           kernel.JobTitle         `json:"title" validate:"required,max=120"`
	Description     kernel.JobDescription   `json:"description" validate:"required,max=5000"`
	Location        string                  `json:"location" validate:"required_unless=IsRemote true,max=120"`
	EmploymentType  kernel.EmploymentType   `json:"employment_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP TEMPORARY"`
	ExperienceLevel kernel.ExperienceLevel  `json:"experience_level" validate:"required,oneof=ENTRY MID SENIOR LEAD EXECUTIVE"`
	SalaryMin       *float64                `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *float64                `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	Currency        string                  `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsRemote        bool                    `json:"is_remote"`
	Requirements    []kernel.JobRequirement `json:"requirements,omitempty" validate:"max=30,dive,max=300"`
	Benefits        []kernel.JobBenefit     `json:"benefits,omitempty" validate:"max=30,dive,max=300"`
	Skills          []string                `json:"skills,omitempty" validate:"max=30,dive,max=50"`
	Deadline        *time.Time              `json:"deadline,omitempty"`
}

// UpdateJobRequest - DTO for updating an existing job posting
type UpdateJobRequest struct {
	Title           *kernel.JobTitle         `json:"title,omitempty"`
	Description     *kernel.JobDescription   `json:"description,omitempty"`
	Location        *string                  `json:"location,omitempty"`
	EmploymentType  *kernel.EmploymentType   `json:"employment_type,omitempty"`
	ExperienceLevel *kernel.ExperienceLevel  `json:"experience_level,omitempty"`
	SalaryMin       *float64                 `json:"salary_min,omitempty"`
	SalaryMax       *float64                 `json:"salary_max,omitempty"`
	IsRemote        *bool                    `json:"is_remote,omitempty"`
	IsActive        *bool                    `json:"is_active,omitempty"`
	Status          *JobStatus               `json:"status,omitempty"`
	Requirements    *[]kernel.JobRequirement `json:"requirements,omitempty"`
	Benefits        *[]kernel.JobBenefit     `json:"benefits,omitempty"`
	Skills          *[]string                `json:"skills,omitempty"`
	Deadline        *time.Time               `json:"deadline,omitempty"`
}

// UpdateFromCreate builds a full update from a create payload, used when a
// posting form is saved over an existing job
func UpdateFromCreate(req CreateJobRequest) UpdateJobRequest {
	return UpdateJobRequest{
		Title:           &req.Title,
		Description:     &req.Description,
		Location:        &req.Location,
		EmploymentType:  &req.EmploymentType,
		ExperienceLevel: &req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		IsRemote:        &req.IsRemote,
		Requirements:    &req.Requirements,
		Benefits:        &req.Benefits,
		Skills:          &req.Skills,
		Deadline:        req.Deadline,
	}
}

// Response type alias for paginated jobs
type PaginatedJobs = kernel.Paginated[Job]
