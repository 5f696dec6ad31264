package employersrv

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
)

// ApplicantList is the list controller type of a job's applicants
type ApplicantList = listx.Controller[application.Application, application.Filters]

// Review drives the applicants screen of one posting
type Review struct {
	*ApplicantList
	gateway employer.Gateway
	jobID   kernel.JobID
}

// NewReview creates the applicant list controller of jobID
func NewReview(gateway employer.Gateway, jobID kernel.JobID, opts ...listx.Option[application.Application, application.Filters]) *Review {
	fetch := func(ctx context.Context, q listx.Query[application.Filters]) (*kernel.Paginated[application.Application], error) {
		return gateway.JobApplications(ctx, jobID, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[application.Application, application.Filters]{
		listx.WithName[application.Application, application.Filters]("applicants:" + jobID.String()),
	}, opts...)
	return &Review{
		ApplicantList: listx.New(fetch, opts...),
		gateway:       gateway,
		jobID:         jobID,
	}
}

// JobID returns the posting under review
func (r *Review) JobID() kernel.JobID {
	return r.jobID
}

// UpdateStatus moves an application along the pipeline. The row changes only
// after the backend accepted the new status.
func (r *Review) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, notes string) error {
	req := application.UpdateStatusRequest{Status: status, Notes: notes}
	if err := formx.Check(req); err != nil {
		return err
	}
	return r.Update(ctx, id.String(), func(ctx context.Context, current application.Application) (application.Application, error) {
		if !current.CanUpdateStatus(status) {
			return application.Application{}, application.ErrInvalidStatusTransition().
				WithDetail("current_status", current.Status).
				WithDetail("new_status", status)
		}
		updated, err := r.gateway.UpdateApplicationStatus(ctx, id, req)
		if err != nil {
			return application.Application{}, err
		}
		return *updated, nil
	})
}

// Rate stores a 1 to 5 rating for an applicant
func (r *Review) Rate(ctx context.Context, id kernel.ApplicationID, rating int, notes string) error {
	req := application.RateApplicationRequest{Rating: rating, Notes: notes}
	if err := formx.Check(req); err != nil {
		return err
	}
	return r.Update(ctx, id.String(), func(ctx context.Context, _ application.Application) (application.Application, error) {
		updated, err := r.gateway.RateApplication(ctx, id, req)
		if err != nil {
			return application.Application{}, err
		}
		return *updated, nil
	})
}

// FilterByStatus shows only applicants in status, or all when status is ""
func (r *Review) FilterByStatus(ctx context.Context, status application.ApplicationStatus) error {
	filters := r.Snapshot().Query.Filters
	filters.Status = status
	return r.ReplaceFilters(ctx, filters)
}

// NewInterviewForm returns the scheduling form for a shortlisted applicant.
// The applicant list is reloaded after the interview is booked.
func (r *Review) NewInterviewForm(id kernel.ApplicationID) (*formx.Form[interview.ScheduleInterviewRequest], error) {
	app, ok := r.Snapshot().Find(id.String())
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	if !app.CanScheduleInterview() {
		return nil, interview.ErrNotShortlisted().WithDetail("current_status", app.Status)
	}

	initial := interview.ScheduleInterviewRequest{
		ApplicationID:   id,
		DurationMinutes: 60,
		Type:            interview.InterviewTypeVideo,
	}
	save := func(ctx context.Context, req interview.ScheduleInterviewRequest) error {
		_, err := r.gateway.ScheduleInterview(ctx, req)
		return err
	}
	return formx.New(initial, save,
		formx.WithFallback[interview.ScheduleInterviewRequest]("Could not schedule the interview"),
		formx.OnSave(func(ctx context.Context, _ interview.ScheduleInterviewRequest) {
			_ = r.Refresh(ctx)
		}),
	), nil
}
