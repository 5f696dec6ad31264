package employersrv

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// PostingList is the list controller type of the employer's jobs
type PostingList = listx.Controller[job.Job, employer.PostingFilters]

// ActiveFlag is the visibility switch of a posting
var ActiveFlag = listx.Flag[job.Job]{
	Name: "is_active",
	Get:  func(j job.Job) bool { return j.IsActive },
	Set: func(j job.Job, v bool) job.Job {
		j.IsActive = v
		return j
	},
}

// Postings drives the "my jobs" screen
type Postings struct {
	*PostingList
	gateway   employer.Gateway
	confirmer listx.Confirmer
}

// NewPostings creates the employer's job list controller
func NewPostings(gateway employer.Gateway, confirmer listx.Confirmer, opts ...listx.Option[job.Job, employer.PostingFilters]) *Postings {
	fetch := func(ctx context.Context, q listx.Query[employer.PostingFilters]) (*kernel.Paginated[job.Job], error) {
		return gateway.MyJobs(ctx, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[job.Job, employer.PostingFilters]{
		listx.WithName[job.Job, employer.PostingFilters]("postings"),
	}, opts...)
	return &Postings{
		PostingList: listx.New(fetch, opts...),
		gateway:     gateway,
		confirmer:   confirmer,
	}
}

// Delete asks for confirmation and removes the posting once the backend
// deleted it
func (p *Postings) Delete(ctx context.Context, id kernel.JobID) error {
	j, ok := p.Snapshot().Find(id.String())
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	prompt := fmt.Sprintf("Delete the posting %q?", j.Title)
	if j.ApplicationCount > 0 {
		prompt = fmt.Sprintf("Delete the posting %q and its %d applications?", j.Title, j.ApplicationCount)
	}
	if err := listx.RequireConfirmation(ctx, p.confirmer, prompt); err != nil {
		return err
	}

	return p.Remove(ctx, id.String(), func(ctx context.Context) error {
		return p.gateway.DeleteJob(ctx, id)
	})
}

// ToggleActive shows or hides a posting, showing the change at once
func (p *Postings) ToggleActive(ctx context.Context, id kernel.JobID) error {
	return p.Toggle(ctx, id.String(), ActiveFlag, func(ctx context.Context, active bool) error {
		_, err := p.gateway.UpdateJob(ctx, id, job.UpdateJobRequest{IsActive: &active})
		return err
	})
}

// SetStatus publishes, closes or archives a posting once the backend accepted
func (p *Postings) SetStatus(ctx context.Context, id kernel.JobID, status job.JobStatus) error {
	return p.Update(ctx, id.String(), func(ctx context.Context, current job.Job) (job.Job, error) {
		if current.Status == status {
			return current, nil
		}
		updated, err := p.gateway.UpdateJob(ctx, id, job.UpdateJobRequest{Status: &status})
		if err != nil {
			return job.Job{}, err
		}
		return *updated, nil
	})
}

// FilterByStatus shows only postings in status, or all when status is ""
func (p *Postings) FilterByStatus(ctx context.Context, status job.JobStatus) error {
	filters := p.Snapshot().Query.Filters
	filters.Status = status
	return p.ReplaceFilters(ctx, filters)
}

// PostingForm creates or edits a job posting
type PostingForm = formx.Form[job.CreateJobRequest]

// PostingRules are the cross-field checks of a posting, shared with the backend
var PostingRules = []formx.Rule[job.CreateJobRequest]{
	formx.GreaterThan("salary_max", "must be greater than the minimum salary",
		func(r job.CreateJobRequest) *float64 { return r.SalaryMin },
		func(r job.CreateJobRequest) *float64 { return r.SalaryMax },
	),
}

// NewPostingForm returns the posting form. With existing nil the form
// creates a job, otherwise it edits existing.
func (p *Postings) NewPostingForm(existing *job.Job) *PostingForm {
	return NewPostingForm(p.gateway, existing, formx.OnSave(func(ctx context.Context, _ job.CreateJobRequest) {
		_ = p.Refresh(ctx)
	}))
}

// NewPostingForm returns a posting form bound to gateway
func NewPostingForm(gateway employer.Gateway, existing *job.Job, opts ...formx.Option[job.CreateJobRequest]) *PostingForm {
	initial := job.CreateJobRequest{
		EmploymentType:  kernel.EmploymentFullTime,
		ExperienceLevel: kernel.ExperienceMid,
	}
	if existing != nil {
		initial = postingRequestFrom(*existing)
	}

	save := func(ctx context.Context, req job.CreateJobRequest) error {
		if existing == nil {
			_, err := gateway.CreateJob(ctx, req)
			return err
		}
		_, err := gateway.UpdateJob(ctx, existing.ID, job.UpdateFromCreate(req))
		return err
	}

	opts = append([]formx.Option[job.CreateJobRequest]{
		formx.WithRules(PostingRules...),
		formx.WithFallback[job.CreateJobRequest]("Could not save the job posting"),
	}, opts...)
	return formx.New(initial, save, opts...)
}

func postingRequestFrom(j job.Job) job.CreateJobRequest {
	return job.CreateJobRequest{
		Title:           j.Title,
		Description:     j.Description,
		Location:        j.Location,
		EmploymentType:  j.EmploymentType,
		ExperienceLevel: j.ExperienceLevel,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		Currency:        j.Currency,
		IsRemote:        j.IsRemote,
		Requirements:    j.Requirements,
		Benefits:        j.Benefits,
		Skills:          j.Skills,
		Deadline:        j.Deadline,
	}
}
