package job

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Gateway is the backend's job feed API
type Gateway interface {
	// ListJobs retrieves published jobs matching filters
	ListJobs(ctx context.Context, filters Filters, page kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// GetJob retrieves a job by ID
	GetJob(ctx context.Context, id kernel.JobID) (*Job, error)

	// SearchJobs runs a free text search
	SearchJobs(ctx context.Context, term string, page kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// RecommendedJobs retrieves jobs picked for the signed-in job seeker
	RecommendedJobs(ctx context.Context, limit int) ([]Job, error)

	// SimilarJobs retrieves jobs close to the given one
	SimilarJobs(ctx context.Context, id kernel.JobID, limit int) ([]Job, error)

	// SaveJob bookmarks a job for the signed-in job seeker
	SaveJob(ctx context.Context, id kernel.JobID) error

	// UnsaveJob removes a bookmark
	UnsaveJob(ctx context.Context, id kernel.JobID) error
}
