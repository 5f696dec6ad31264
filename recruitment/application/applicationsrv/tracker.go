package applicationsrv

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
)

// List is the list controller type of an application list
type List = listx.Controller[application.Application, application.Filters]

// Tracker drives the "my applications" screen
type Tracker struct {
	*List
	gateway   application.Gateway
	confirmer listx.Confirmer
}

// NewTracker creates the job seeker's application list controller
func NewTracker(gateway application.Gateway, confirmer listx.Confirmer, opts ...listx.Option[application.Application, application.Filters]) *Tracker {
	fetch := func(ctx context.Context, q listx.Query[application.Filters]) (*kernel.Paginated[application.Application], error) {
		return gateway.ListMine(ctx, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[application.Application, application.Filters]{
		listx.WithName[application.Application, application.Filters]("applications"),
	}, opts...)
	return &Tracker{
		List:      listx.New(fetch, opts...),
		gateway:   gateway,
		confirmer: confirmer,
	}
}

// Withdraw asks for confirmation, withdraws the application and removes it
// from the list once the backend accepted
func (t *Tracker) Withdraw(ctx context.Context, id kernel.ApplicationID) error {
	app, ok := t.Snapshot().Find(id.String())
	if !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	if !app.CanWithdraw() {
		return application.ErrCannotWithdraw().WithDetail("current_status", app.Status)
	}

	prompt := fmt.Sprintf("Withdraw your application to %s?", app.JobTitle)
	if err := listx.RequireConfirmation(ctx, t.confirmer, prompt); err != nil {
		return err
	}

	return t.Remove(ctx, id.String(), func(ctx context.Context) error {
		return t.gateway.Withdraw(ctx, id)
	})
}

// FilterByStatus shows only applications in status, or all when status is ""
func (t *Tracker) FilterByStatus(ctx context.Context, status application.ApplicationStatus) error {
	filters := t.Snapshot().Query.Filters
	filters.Status = status
	return t.ReplaceFilters(ctx, filters)
}

// NewApplyForm returns the application form for a job. onApplied runs after
// a successful submission, typically to mark the job as applied in the feed.
func NewApplyForm(gateway application.Gateway, jobID kernel.JobID, onApplied func(ctx context.Context, app *application.Application)) *formx.Form[application.SubmitApplicationRequest] {
	var submitted *application.Application
	save := func(ctx context.Context, req application.SubmitApplicationRequest) error {
		app, err := gateway.Submit(ctx, req)
		if err != nil {
			return err
		}
		submitted = app
		return nil
	}
	return formx.New(application.SubmitApplicationRequest{JobID: jobID}, save,
		formx.WithFallback[application.SubmitApplicationRequest]("Could not submit your application"),
		formx.OnSave(func(ctx context.Context, _ application.SubmitApplicationRequest) {
			if onApplied != nil {
				onApplied(ctx, submitted)
			}
		}),
	)
}
