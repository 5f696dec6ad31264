package applicationinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
)

const basePath = "/api/applications"

// HTTPGateway implements application.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new application gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ application.Gateway = (*HTTPGateway)(nil)

// Submit - POST /api/applications
func (g *HTTPGateway) Submit(ctx context.Context, req application.SubmitApplicationRequest) (*application.Application, error) {
	var resp application.Application
	if err := g.client.Post(ctx, basePath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMine - GET /api/applications/my
func (g *HTTPGateway) ListMine(ctx context.Context, filters application.Filters, page kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[application.Application]
	if err := g.client.Get(ctx, basePath+"/my", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get - GET /api/applications/:id
func (g *HTTPGateway) Get(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var resp application.Application
	if err := g.client.Get(ctx, httpx.Path(basePath, id.String()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Withdraw - POST /api/applications/:id/withdraw
func (g *HTTPGateway) Withdraw(ctx context.Context, id kernel.ApplicationID) error {
	return g.client.Post(ctx, httpx.Path(basePath, id.String(), "withdraw"), nil, nil)
}
