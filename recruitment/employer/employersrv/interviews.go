package employersrv

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
)

// InterviewGateway lets the interview agenda run on the employer API: the
// company's interviews are listed from the employer endpoint, single reads
// go to base.
func InterviewGateway(emp employer.Gateway, base interview.Gateway) interview.Gateway {
	return &employerInterviews{Gateway: base, employer: emp}
}

type employerInterviews struct {
	interview.Gateway
	employer employer.Gateway
}

func (g *employerInterviews) ListMine(ctx context.Context, filters interview.Filters, page kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	return g.employer.ListInterviews(ctx, filters, page)
}

func (g *employerInterviews) Schedule(ctx context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	return g.employer.ScheduleInterview(ctx, req)
}

func (g *employerInterviews) Update(ctx context.Context, id kernel.InterviewID, req interview.UpdateInterviewRequest) (*interview.Interview, error) {
	return g.employer.UpdateInterview(ctx, id, req)
}

func (g *employerInterviews) Cancel(ctx context.Context, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error) {
	return g.employer.CancelInterview(ctx, id, req)
}
