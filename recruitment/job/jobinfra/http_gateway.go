package jobinfra

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

const basePath = "/api/jobs"

// HTTPGateway implements job.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new job gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ job.Gateway = (*HTTPGateway)(nil)

// ListJobs - GET /api/jobs
func (g *HTTPGateway) ListJobs(ctx context.Context, filters job.Filters, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[job.Job]
	if err := g.client.Get(ctx, basePath, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetJob - GET /api/jobs/:id
func (g *HTTPGateway) GetJob(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var resp job.Job
	if err := g.client.Get(ctx, httpx.Path(basePath, id.String()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchJobs - GET /api/jobs/search?q=
func (g *HTTPGateway) SearchJobs(ctx context.Context, term string, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	query := httpx.PageQuery(page)
	query.Set("q", term)

	var resp kernel.Paginated[job.Job]
	if err := g.client.Get(ctx, basePath+"/search", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecommendedJobs - GET /api/jobs/recommended
func (g *HTTPGateway) RecommendedJobs(ctx context.Context, limit int) ([]job.Job, error) {
	var resp []job.Job
	if err := g.client.Get(ctx, basePath+"/recommended", limitQuery(limit), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SimilarJobs - GET /api/jobs/:id/similar
func (g *HTTPGateway) SimilarJobs(ctx context.Context, id kernel.JobID, limit int) ([]job.Job, error) {
	var resp []job.Job
	if err := g.client.Get(ctx, httpx.Path(basePath, id.String(), "similar"), limitQuery(limit), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SaveJob - POST /api/jobs/:id/save
func (g *HTTPGateway) SaveJob(ctx context.Context, id kernel.JobID) error {
	return g.client.Post(ctx, httpx.Path(basePath, id.String(), "save"), nil, nil)
}

// UnsaveJob - DELETE /api/jobs/:id/save
func (g *HTTPGateway) UnsaveJob(ctx context.Context, id kernel.JobID) error {
	return g.client.Delete(ctx, httpx.Path(basePath, id.String(), "save"), nil)
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}
