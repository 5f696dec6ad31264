package seeker

import (
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// UpdateProfileRequest - DTO for editing the profile header
type UpdateProfileRequest struct {
	FirstName     kernel.FirstName `json:"first_name" validate:"required,max=50"`
	LastName      kernel.LastName  `json:"last_name" validate:"required,max=50"`
	Phone         kernel.Phone     `json:"phone,omitempty" validate:"omitempty,e164"`
	Headline      string           `json:"headline,omitempty" validate:"max=120"`
	Bio           string           `json:"bio,omitempty" validate:"max=2000"`
	Location      string           `json:"location,omitempty" validate:"max=120"`
	WebsiteURL    string           `json:"website_url,omitempty" validate:"omitempty,http_url"`
	LinkedInURL   string           `json:"linkedin_url,omitempty" validate:"omitempty,http_url"`
	GithubURL     string           `json:"github_url,omitempty" validate:"omitempty,http_url"`
	DesiredSalary *float64         `json:"desired_salary,omitempty" validate:"omitempty,gte=0"`
	OpenToWork    bool             `json:"open_to_work"`
}

// ProfileRequestFrom prefills an update with the current profile
func ProfileRequestFrom(p Profile) UpdateProfileRequest {
	return UpdateProfileRequest{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Headline:      p.Headline,
		Bio:           p.Bio,
		Location:      p.Location,
		WebsiteURL:    p.WebsiteURL,
		LinkedInURL:   p.LinkedInURL,
		GithubURL:     p.GithubURL,
		DesiredSalary: p.DesiredSalary,
		OpenToWork:    p.OpenToWork,
	}
}

// SkillRequest - DTO for adding or editing a skill
type SkillRequest struct {
	Name              string     `json:"name" validate:"required,max=50"`
	Level             SkillLevel `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty" validate:"omitempty,gte=0,lte=60"`
}

// ExperienceRequest - DTO for adding or editing an experience entry
type ExperienceRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Company     string     `json:"company" validate:"required,max=100"`
	Location    string     `json:"location,omitempty" validate:"max=120"`
	StartDate   *time.Time `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty" validate:"required_unless=IsCurrent true"`
	IsCurrent   bool       `json:"is_current"`
	Description string     `json:"description,omitempty" validate:"max=2000"`
}

// ExperienceRequestFrom prefills an edit form
func ExperienceRequestFrom(e Experience) ExperienceRequest {
	start := e.StartDate
	return ExperienceRequest{
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   &start,
		EndDate:     e.EndDate,
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
	}
}

// EducationRequest - DTO for adding or editing an education entry
type EducationRequest struct {
	Institution  string     `json:"institution" validate:"required,max=150"`
	Degree       string     `json:"degree" validate:"required,max=100"`
	FieldOfStudy string     `json:"field_of_study,omitempty" validate:"max=100"`
	StartDate    *time.Time `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsCurrent    bool       `json:"is_current"`
	Grade        string     `json:"grade,omitempty" validate:"max=20"`
	Description  string     `json:"description,omitempty" validate:"max=1000"`
}

// EducationRequestFrom prefills an edit form
func EducationRequestFrom(e Education) EducationRequest {
	start := e.StartDate
	return EducationRequest{
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    &start,
		EndDate:      e.EndDate,
		IsCurrent:    e.IsCurrent,
		Grade:        e.Grade,
		Description:  e.Description,
	}
}

// Upload is a file ready to be sent as multipart
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResponse is returned by the upload endpoints
type UploadResponse struct {
	URL kernel.FileURL `json:"url"`
}
