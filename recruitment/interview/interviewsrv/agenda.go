package interviewsrv

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
)

// List is the list controller type of an interview list
type List = listx.Controller[interview.Interview, interview.Filters]

// Agenda drives the interview list of either role
type Agenda struct {
	*List
	gateway   interview.Gateway
	confirmer listx.Confirmer
}

// NewAgenda creates the interview list controller
func NewAgenda(gateway interview.Gateway, confirmer listx.Confirmer, opts ...listx.Option[interview.Interview, interview.Filters]) *Agenda {
	fetch := func(ctx context.Context, q listx.Query[interview.Filters]) (*kernel.Paginated[interview.Interview], error) {
		return gateway.ListMine(ctx, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[interview.Interview, interview.Filters]{
		listx.WithName[interview.Interview, interview.Filters]("interviews"),
	}, opts...)
	return &Agenda{
		List:      listx.New(fetch, opts...),
		gateway:   gateway,
		confirmer: confirmer,
	}
}

// Cancel asks for confirmation and replaces the interview with the cancelled
// one returned by the backend
func (a *Agenda) Cancel(ctx context.Context, id kernel.InterviewID, reason string) error {
	iv, ok := a.Snapshot().Find(id.String())
	if !ok {
		return interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}
	if !iv.CanBeChanged() {
		return interview.ErrCannotChange().WithDetail("current_status", iv.Status)
	}

	prompt := fmt.Sprintf("Cancel the interview for %s on %s?", iv.JobTitle, iv.ScheduledAt.Format("Jan 2 15:04"))
	if err := listx.RequireConfirmation(ctx, a.confirmer, prompt); err != nil {
		return err
	}

	return a.Update(ctx, id.String(), func(ctx context.Context, _ interview.Interview) (interview.Interview, error) {
		updated, err := a.gateway.Cancel(ctx, id, interview.CancelInterviewRequest{Reason: reason})
		if err != nil {
			return interview.Interview{}, err
		}
		return *updated, nil
	})
}

// Reschedule applies req and replaces the interview once the backend accepted
func (a *Agenda) Reschedule(ctx context.Context, id kernel.InterviewID, req interview.UpdateInterviewRequest) error {
	if err := formx.Check(req); err != nil {
		return err
	}
	return a.Update(ctx, id.String(), func(ctx context.Context, current interview.Interview) (interview.Interview, error) {
		if !current.CanBeChanged() {
			return interview.Interview{}, interview.ErrCannotChange().WithDetail("current_status", current.Status)
		}
		updated, err := a.gateway.Update(ctx, id, req)
		if err != nil {
			return interview.Interview{}, err
		}
		return *updated, nil
	})
}

// NewScheduleForm returns the form used by an employer to schedule an
// interview for an application
func NewScheduleForm(gateway interview.Gateway, applicationID kernel.ApplicationID, opts ...formx.Option[interview.ScheduleInterviewRequest]) *formx.Form[interview.ScheduleInterviewRequest] {
	initial := interview.ScheduleInterviewRequest{
		ApplicationID:   applicationID,
		DurationMinutes: 60,
		Type:            interview.InterviewTypeVideo,
	}
	save := func(ctx context.Context, req interview.ScheduleInterviewRequest) error {
		_, err := gateway.Schedule(ctx, req)
		return err
	}
	opts = append([]formx.Option[interview.ScheduleInterviewRequest]{
		formx.WithFallback[interview.ScheduleInterviewRequest]("Could not schedule the interview"),
	}, opts...)
	return formx.New(initial, save, opts...)
}
