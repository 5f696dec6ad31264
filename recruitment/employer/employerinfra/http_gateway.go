package employerinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

const basePath = "/api/employer"

// HTTPGateway implements employer.Gateway over the REST API. Interview
// writes go through the shared interview endpoints.
type HTTPGateway struct {
	client     *httpx.Client
	interviews *interviewinfra.HTTPGateway
}

// NewHTTPGateway creates a new employer gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{
		client:     client,
		interviews: interviewinfra.NewHTTPGateway(client),
	}
}

var _ employer.Gateway = (*HTTPGateway)(nil)

// CreateJob - POST /api/employer/jobs
func (g *HTTPGateway) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	var resp job.Job
	if err := g.client.Post(ctx, basePath+"/jobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateJob - PUT /api/employer/jobs/:id
func (g *HTTPGateway) UpdateJob(ctx context.Context, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	var resp job.Job
	if err := g.client.Put(ctx, httpx.Path(basePath+"/jobs", id.String()), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteJob - DELETE /api/employer/jobs/:id
func (g *HTTPGateway) DeleteJob(ctx context.Context, id kernel.JobID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/jobs", id.String()), nil)
}

// MyJobs - GET /api/employer/jobs
func (g *HTTPGateway) MyJobs(ctx context.Context, filters employer.PostingFilters, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[job.Job]
	if err := g.client.Get(ctx, basePath+"/jobs", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobApplications - GET /api/employer/jobs/:id/applications
func (g *HTTPGateway) JobApplications(ctx context.Context, jobID kernel.JobID, filters application.Filters, page kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[application.Application]
	if err := g.client.Get(ctx, httpx.Path(basePath+"/jobs", jobID.String(), "applications"), query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateApplicationStatus - PATCH /api/employer/applications/:id/status
func (g *HTTPGateway) UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	var resp application.Application
	if err := g.client.Patch(ctx, httpx.Path(basePath+"/applications", id.String(), "status"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RateApplication - POST /api/employer/applications/:id/rate
func (g *HTTPGateway) RateApplication(ctx context.Context, id kernel.ApplicationID, req application.RateApplicationRequest) (*application.Application, error) {
	var resp application.Application
	if err := g.client.Post(ctx, httpx.Path(basePath+"/applications", id.String(), "rate"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScheduleInterview - POST /api/interviews
func (g *HTTPGateway) ScheduleInterview(ctx context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	return g.interviews.Schedule(ctx, req)
}

// UpdateInterview - PUT /api/interviews/:id
func (g *HTTPGateway) UpdateInterview(ctx context.Context, id kernel.InterviewID, req interview.UpdateInterviewRequest) (*interview.Interview, error) {
	return g.interviews.Update(ctx, id, req)
}

// CancelInterview - POST /api/interviews/:id/cancel
func (g *HTTPGateway) CancelInterview(ctx context.Context, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error) {
	return g.interviews.Cancel(ctx, id, req)
}

// ListInterviews - GET /api/employer/interviews
func (g *HTTPGateway) ListInterviews(ctx context.Context, filters interview.Filters, page kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[interview.Interview]
	if err := g.client.Get(ctx, basePath+"/interviews", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTeam - GET /api/employer/team
func (g *HTTPGateway) ListTeam(ctx context.Context) ([]employer.TeamMember, error) {
	var resp []employer.TeamMember
	if err := g.client.Get(ctx, basePath+"/team", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// InviteTeamMember - POST /api/employer/team/invite
func (g *HTTPGateway) InviteTeamMember(ctx context.Context, req employer.InviteMemberRequest) (*employer.TeamMember, error) {
	var resp employer.TeamMember
	if err := g.client.Post(ctx, basePath+"/team/invite", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTeamMemberRole - PATCH /api/employer/team/:id/role
func (g *HTTPGateway) UpdateTeamMemberRole(ctx context.Context, id kernel.TeamMemberID, req employer.UpdateRoleRequest) (*employer.TeamMember, error) {
	var resp employer.TeamMember
	if err := g.client.Patch(ctx, httpx.Path(basePath+"/team", id.String(), "role"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveTeamMember - DELETE /api/employer/team/:id
func (g *HTTPGateway) RemoveTeamMember(ctx context.Context, id kernel.TeamMemberID) error {
	return g.client.Delete(ctx, httpx.Path(basePath+"/team", id.String()), nil)
}

// Dashboard - GET /api/employer/dashboard
func (g *HTTPGateway) Dashboard(ctx context.Context) (*employer.Dashboard, error) {
	var resp employer.Dashboard
	if err := g.client.Get(ctx, basePath+"/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
