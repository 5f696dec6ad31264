package employer

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// Gateway is the employer API: postings, applicants, interviews, team and
// dashboard of the signed-in employer's company
type Gateway interface {
	// Postings
	CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error)
	UpdateJob(ctx context.Context, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error)
	DeleteJob(ctx context.Context, id kernel.JobID) error
	MyJobs(ctx context.Context, filters PostingFilters, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error)

	// Applicants
	JobApplications(ctx context.Context, jobID kernel.JobID, filters application.Filters, page kernel.PaginationOptions) (*kernel.Paginated[application.Application], error)
	UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error)
	RateApplication(ctx context.Context, id kernel.ApplicationID, req application.RateApplicationRequest) (*application.Application, error)

	// Interviews
	ScheduleInterview(ctx context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error)
	UpdateInterview(ctx context.Context, id kernel.InterviewID, req interview.UpdateInterviewRequest) (*interview.Interview, error)
	CancelInterview(ctx context.Context, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error)
	ListInterviews(ctx context.Context, filters interview.Filters, page kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error)

	// Team
	ListTeam(ctx context.Context) ([]TeamMember, error)
	InviteTeamMember(ctx context.Context, req InviteMemberRequest) (*TeamMember, error)
	UpdateTeamMemberRole(ctx context.Context, id kernel.TeamMemberID, req UpdateRoleRequest) (*TeamMember, error)
	RemoveTeamMember(ctx context.Context, id kernel.TeamMemberID) error

	// Dashboard retrieves the aggregate numbers
	Dashboard(ctx context.Context) (*Dashboard, error)
}
