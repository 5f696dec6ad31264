package seeker

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// SkillLevel is the self-assessed proficiency of a skill
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillExpert       SkillLevel = "EXPERT"
)

// Profile is the job seeker's public profile
type Profile struct {
	UserID            kernel.UserID    `json:"user_id"`
	FirstName         kernel.FirstName `json:"first_name"`
	LastName          kernel.LastName  `json:"last_name"`
	Email             kernel.Email     `json:"email"`
	Phone             kernel.Phone     `json:"phone,omitempty"`
	Headline          string           `json:"headline,omitempty"`
	Bio               string           `json:"bio,omitempty"`
	Location          string           `json:"location,omitempty"`
	WebsiteURL        string           `json:"website_url,omitempty"`
	LinkedInURL       string           `json:"linkedin_url,omitempty"`
	GithubURL         string           `json:"github_url,omitempty"`
	ResumeURL         kernel.FileURL   `json:"resume_url,omitempty"`
	ProfilePictureURL kernel.FileURL   `json:"profile_picture_url,omitempty"`
	DesiredSalary     *float64         `json:"desired_salary,omitempty"`
	OpenToWork        bool             `json:"open_to_work"`
	Skills            []Skill          `json:"skills"`
	Experiences       []Experience     `json:"experiences"`
	Educations        []Education      `json:"educations"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Skill on a profile
type Skill struct {
	ID                kernel.SkillID `json:"id"`
	Name              string         `json:"name"`
	Level             SkillLevel     `json:"level"`
	YearsOfExperience *int           `json:"years_of_experience,omitempty"`
}

// Experience is one past or current position
type Experience struct {
	ID          kernel.ExperienceID `json:"id"`
	Title       string              `json:"title"`
	Company     string              `json:"company"`
	Location    string              `json:"location,omitempty"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	IsCurrent   bool                `json:"is_current"`
	Description string              `json:"description,omitempty"`
}

// Education is one degree or course
type Education struct {
	ID           kernel.EducationID `json:"id"`
	Institution  string             `json:"institution"`
	Degree       string             `json:"degree"`
	FieldOfStudy string             `json:"field_of_study,omitempty"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
	IsCurrent    bool               `json:"is_current"`
	Grade        string             `json:"grade,omitempty"`
	Description  string             `json:"description,omitempty"`
}

// ===== Domain Methods =====

// FullName returns first and last name
func (p *Profile) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

// HasResume reports whether a resume was uploaded
func (p *Profile) HasResume() bool {
	return p.ResumeURL != ""
}

// Completeness returns a 0-100 score of how filled in the profile is
func (p *Profile) Completeness() int {
	checks := []bool{
		p.FirstName != "" && p.LastName != "",
		p.Headline != "",
		p.Bio != "",
		p.Location != "",
		p.HasResume(),
		p.ProfilePictureURL != "",
		len(p.Skills) > 0,
		len(p.Experiences) > 0,
		len(p.Educations) > 0,
	}
	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return done * 100 / len(checks)
}

// FindSkill looks up a skill by ID
func (p *Profile) FindSkill(id kernel.SkillID) (Skill, bool) {
	for _, s := range p.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// FindExperience looks up an experience entry by ID
func (p *Profile) FindExperience(id kernel.ExperienceID) (Experience, bool) {
	for _, e := range p.Experiences {
		if e.ID == id {
			return e, true
		}
	}
	return Experience{}, false
}

// FindEducation looks up an education entry by ID
func (p *Profile) FindEducation(id kernel.EducationID) (Education, bool) {
	for _, e := range p.Educations {
		if e.ID == id {
			return e, true
		}
	}
	return Education{}, false
}

// Duration returns how long the position lasted, up to now when current
func (e Experience) Duration(now time.Time) time.Duration {
	end := now
	if e.EndDate != nil && !e.IsCurrent {
		end = *e.EndDate
	}
	if end.Before(e.StartDate) {
		return 0
	}
	return end.Sub(e.StartDate)
}

// Period renders the date range, e.g. "Jan 2020 - Present"
func (e Experience) Period() string {
	return period(e.StartDate, e.EndDate, e.IsCurrent)
}

// Period renders the date range of the education entry
func (e Education) Period() string {
	return period(e.StartDate, e.EndDate, e.IsCurrent)
}

func period(start time.Time, end *time.Time, current bool) string {
	to := "Present"
	if !current && end != nil {
		to = end.Format("Jan 2006")
	}
	return start.Format("Jan 2006") + " - " + to
}
