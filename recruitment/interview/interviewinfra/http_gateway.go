package interviewinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
)

const basePath = "/api/interviews"

// HTTPGateway implements interview.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new interview gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ interview.Gateway = (*HTTPGateway)(nil)

// ListMine - GET /api/interviews/my
func (g *HTTPGateway) ListMine(ctx context.Context, filters interview.Filters, page kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[interview.Interview]
	if err := g.client.Get(ctx, basePath+"/my", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get - GET /api/interviews/:id
func (g *HTTPGateway) Get(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	var resp interview.Interview
	if err := g.client.Get(ctx, httpx.Path(basePath, id.String()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Schedule - POST /api/interviews
func (g *HTTPGateway) Schedule(ctx context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	var resp interview.Interview
	if err := g.client.Post(ctx, basePath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update - PUT /api/interviews/:id
func (g *HTTPGateway) Update(ctx context.Context, id kernel.InterviewID, req interview.UpdateInterviewRequest) (*interview.Interview, error) {
	var resp interview.Interview
	if err := g.client.Put(ctx, httpx.Path(basePath, id.String()), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel - POST /api/interviews/:id/cancel
func (g *HTTPGateway) Cancel(ctx context.Context, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error) {
	var resp interview.Interview
	if err := g.client.Post(ctx, httpx.Path(basePath, id.String(), "cancel"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
