package seekerinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

const basePath = "/api/job-seeker"

// HTTPGateway implements seeker.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new job seeker gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ seeker.Gateway = (*HTTPGateway)(nil)

// GetProfile - GET /api/job-seeker/profile
func (g *HTTPGateway) GetProfile(ctx context.Context) (*seeker.Profile, error) {
	var p seeker.Profile
	if err := g.client.Get(ctx, basePath+"/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile - PUT /api/job-seeker/profile
func (g *HTTPGateway) UpdateProfile(ctx context.Context, req seeker.UpdateProfileRequest) (*seeker.Profile, error) {
	var p seeker.Profile
	if err := g.client.Put(ctx, basePath+"/profile", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadResume - POST /api/job-seeker/profile/resume (multipart field "resume")
func (g *HTTPGateway) UploadResume(ctx context.Context, file seeker.Upload) (kernel.FileURL, error) {
	return g.upload(ctx, basePath+"/profile/resume", "resume", file)
}

// UploadProfilePicture - POST /api/job-seeker/profile/picture (multipart field "picture")
func (g *HTTPGateway) UploadProfilePicture(ctx context.Context, file seeker.Upload) (kernel.FileURL, error) {
	return g.upload(ctx, basePath+"/profile/picture", "picture", file)
}

func (g *HTTPGateway) upload(ctx context.Context, path, field string, file seeker.Upload) (kernel.FileURL, error) {
	form := &httpx.MultipartForm{
		Files: []httpx.File{{
			FieldName:   field,
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Data:        file.Data,
		}},
	}
	var resp seeker.UploadResponse
	if err := g.client.PostMultipart(ctx, path, form, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// AddSkill - POST /api/job-seeker/skills
func (g *HTTPGateway) AddSkill(ctx context.Context, req seeker.SkillRequest) (*seeker.Skill, error) {
	var s seeker.Skill
	if err := g.client.Post(ctx, basePath+"/skills", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSkill - PUT /api/job-seeker/skills/:id
func (g *HTTPGateway) UpdateSkill(ctx context.Context, id kernel.SkillID, req seeker.SkillRequest) (*seeker.Skill, error) {
	var s seeker.Skill
	if err := g.client.Put(ctx, httpx.Path(basePath+"/skills", id.String()), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSkill - DELETE /api/job-seeker/skills/:id
func (g *HTTPGateway) DeleteSkill(ctx context.Context, id kernel.SkillID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/skills", id.String()), nil)
}

// AddExperience - POST /api/job-seeker/experience
func (g *HTTPGateway) AddExperience(ctx context.Context, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	var e seeker.Experience
	if err := g.client.Post(ctx, basePath+"/experience", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExperience - PUT /api/job-seeker/experience/:id
func (g *HTTPGateway) UpdateExperience(ctx context.Context, id kernel.ExperienceID, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	var e seeker.Experience
	if err := g.client.Put(ctx, httpx.Path(basePath+"/experience", id.String()), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExperience - DELETE /api/job-seeker/experience/:id
func (g *HTTPGateway) DeleteExperience(ctx context.Context, id kernel.ExperienceID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/experience", id.String()), nil)
}

// AddEducation - POST /api/job-seeker/education
func (g *HTTPGateway) AddEducation(ctx context.Context, req seeker.EducationRequest) (*seeker.Education, error) {
	var e seeker.Education
	if err := g.client.Post(ctx, basePath+"/education", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEducation - PUT /api/job-seeker/education/:id
func (g *HTTPGateway) UpdateEducation(ctx context.Context, id kernel.EducationID, req seeker.EducationRequest) (*seeker.Education, error) {
	var e seeker.Education
	if err := g.client.Put(ctx, httpx.Path(basePath+"/education", id.String()), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEducation - DELETE /api/job-seeker/education/:id
func (g *HTTPGateway) DeleteEducation(ctx context.Context, id kernel.EducationID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/education", id.String()), nil)
}

// ListSavedJobs - GET /api/job-seeker/saved-jobs
func (g *HTTPGateway) ListSavedJobs(ctx context.Context, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var resp kernel.Paginated[job.Job]
	if err := g.client.Get(ctx, basePath+"/saved-jobs", httpx.PageQuery(page), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveJob - POST /api/job-seeker/saved-jobs/:jobId
func (g *HTTPGateway) SaveJob(ctx context.Context, id kernel.JobID) error {
	return g.client.Post(ctx, httpx.Path(basePath+"/saved-jobs", id.String()), nil, nil)
}

// UnsaveJob - DELETE /api/job-seeker/saved-jobs/:jobId
func (g *HTTPGateway) UnsaveJob(ctx context.Context, id kernel.JobID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/saved-jobs", id.String()), nil)
}
