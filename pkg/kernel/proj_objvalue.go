package kernel

type Email string

type Phone string

type FirstName string

type LastName string

type JobTitle string

type JobDescription string

type CompanyName string

type JobRequirement string

type JobBenefit string

type FileURL string

// Role is the account type returned by the auth endpoints and persisted as userRole.
type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) GetDisplayName() string {
	switch r {
	case RoleJobSeeker:
		return "Job seeker"
	case RoleEmployer:
		return "Employer"
	case RoleAdmin:
		return "Administrator"
	default:
		return string(r)
	}
}

// EmploymentType of a job posting
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
	EmploymentTemporary  EmploymentType = "TEMPORARY"
)

// IsValid reports whether t is a known employment type
func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentTemporary:
		return true
	default:
		return false
	}
}

// GetDisplayName returns the human readable label
func (t EmploymentType) GetDisplayName() string {
	switch t {
	case EmploymentFullTime:
		return "Full-time"
	case EmploymentPartTime:
		return "Part-time"
	case EmploymentContract:
		return "Contract"
	case EmploymentInternship:
		return "Internship"
	case EmploymentTemporary:
		return "Temporary"
	default:
		return "Unknown"
	}
}

// ExperienceLevel requested by a job posting
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceLead      ExperienceLevel = "LEAD"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

// IsValid reports whether l is a known experience level
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	default:
		return false
	}
}

// GetDisplayName returns the human readable label
func (l ExperienceLevel) GetDisplayName() string {
	switch l {
	case ExperienceEntry:
		return "Entry level"
	case ExperienceMid:
		return "Mid level"
	case ExperienceSenior:
		return "Senior"
	case ExperienceLead:
		return "Lead"
	case ExperienceExecutive:
		return "Executive"
	default:
		return string(l)
	}
}
