package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// Feed is the list controller type of the job feed
type Feed = listx.Controller[job.Job, job.Filters]

// SavedFlag is the bookmark toggle of a job
var SavedFlag = listx.Flag[job.Job]{
	Name: "is_saved",
	Get:  func(j job.Job) bool { return j.IsSaved },
	Set: func(j job.Job, v bool) job.Job {
		j.IsSaved = v
		return j
	},
}

// Browser drives the job feed screen
type Browser struct {
	*Feed
	gateway job.Gateway
}

// NewBrowser creates a job feed controller
func NewBrowser(gateway job.Gateway, opts ...listx.Option[job.Job, job.Filters]) *Browser {
	fetch := func(ctx context.Context, q listx.Query[job.Filters]) (*kernel.Paginated[job.Job], error) {
		return gateway.ListJobs(ctx, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[job.Job, job.Filters]{listx.WithName[job.Job, job.Filters]("jobs")}, opts...)
	return &Browser{
		Feed:    listx.New(fetch, opts...),
		gateway: gateway,
	}
}

// ToggleSaved bookmarks or un-bookmarks a job, showing the change at once
func (b *Browser) ToggleSaved(ctx context.Context, id kernel.JobID) error {
	return b.Toggle(ctx, id.String(), SavedFlag, func(ctx context.Context, saved bool) error {
		if saved {
			return b.gateway.SaveJob(ctx, id)
		}
		return b.gateway.UnsaveJob(ctx, id)
	})
}

// Search replaces the search text, keeping the other filters
func (b *Browser) Search(ctx context.Context, term string) error {
	filters := b.Snapshot().Query.Filters
	filters.Search = term
	return b.ReplaceFilters(ctx, filters)
}

// MarkApplied records a successful application on the listed job
func (b *Browser) MarkApplied(ctx context.Context, id kernel.JobID) error {
	return b.Update(ctx, id.String(), func(_ context.Context, current job.Job) (job.Job, error) {
		current.HasApplied = true
		current.ApplicationCount++
		return current, nil
	})
}

// Detail is a job with the postings shown next to it
type Detail struct {
	Job     *job.Job
	Similar []job.Job
}

// LoadDetail fetches a job and its similar postings. A failure to load the
// similar postings does not fail the detail.
func LoadDetail(ctx context.Context, gateway job.Gateway, id kernel.JobID, similar int) (*Detail, error) {
	j, err := gateway.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Job: j}
	if similar > 0 {
		list, err := gateway.SimilarJobs(ctx, id, similar)
		if err != nil {
			logx.Warnf("similar jobs for %s unavailable: %v", id, err)
		}
		d.Similar = list
	}
	return d, nil
}

// Open reports whether the job accepts applications now
func (d *Detail) Open() bool {
	return d.Job.AcceptsApplications(time.Now())
}
