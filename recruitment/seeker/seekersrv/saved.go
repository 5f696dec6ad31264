package seekersrv

import (
	"context"
	"net/url"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// NoFilters is the filter shape of lists the backend does not filter
type NoFilters struct{}

func (NoFilters) Merge(NoFilters) NoFilters { return NoFilters{} }
func (NoFilters) Encode(url.Values)         {}

// SavedList is the list controller type of the saved jobs screen
type SavedList = listx.Controller[job.Job, NoFilters]

// SavedJobs drives the bookmarked jobs screen
type SavedJobs struct {
	*SavedList
	gateway SavedJobsGateway
}

// SavedJobsGateway is the part of seeker.Gateway the saved jobs list uses
type SavedJobsGateway interface {
	ListSavedJobs(ctx context.Context, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error)
	UnsaveJob(ctx context.Context, id kernel.JobID) error
}

// NewSavedJobs creates the saved jobs controller
func NewSavedJobs(gateway SavedJobsGateway, opts ...listx.Option[job.Job, NoFilters]) *SavedJobs {
	fetch := func(ctx context.Context, q listx.Query[NoFilters]) (*kernel.Paginated[job.Job], error) {
		return gateway.ListSavedJobs(ctx, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[job.Job, NoFilters]{listx.WithName[job.Job, NoFilters]("saved-jobs")}, opts...)
	return &SavedJobs{
		SavedList: listx.New(fetch, opts...),
		gateway:   gateway,
	}
}

// Unsave removes the bookmark and drops the job from the list once the
// backend confirmed
func (s *SavedJobs) Unsave(ctx context.Context, id kernel.JobID) error {
	return s.Remove(ctx, id.String(), func(ctx context.Context) error {
		return s.gateway.UnsaveJob(ctx, id)
	})
}
