package seeker

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// Gateway is the job seeker profile API
type Gateway interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error)

	// UploadResume sends a resume file and returns its public URL
	UploadResume(ctx context.Context, file Upload) (kernel.FileURL, error)

	// UploadProfilePicture sends a picture and returns its public URL
	UploadProfilePicture(ctx context.Context, file Upload) (kernel.FileURL, error)

	AddSkill(ctx context.Context, req SkillRequest) (*Skill, error)
	UpdateSkill(ctx context.Context, id kernel.SkillID, req SkillRequest) (*Skill, error)
	DeleteSkill(ctx context.Context, id kernel.SkillID) error

	AddExperience(ctx context.Context, req ExperienceRequest) (*Experience, error)
	UpdateExperience(ctx context.Context, id kernel.ExperienceID, req ExperienceRequest) (*Experience, error)
	DeleteExperience(ctx context.Context, id kernel.ExperienceID) error

	AddEducation(ctx context.Context, req EducationRequest) (*Education, error)
	UpdateEducation(ctx context.Context, id kernel.EducationID, req EducationRequest) (*Education, error)
	DeleteEducation(ctx context.Context, id kernel.EducationID) error

	// ListSavedJobs retrieves the bookmarked jobs
	ListSavedJobs(ctx context.Context, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error)
	SaveJob(ctx context.Context, id kernel.JobID) error
	UnsaveJob(ctx context.Context, id kernel.JobID) error
}
