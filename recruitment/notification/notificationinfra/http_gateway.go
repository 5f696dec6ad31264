package notificationinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
)

const basePath = "/api/notifications"

// HTTPGateway implements notification.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new notification gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ notification.Gateway = (*HTTPGateway)(nil)

// List - GET /api/notifications
func (g *HTTPGateway) List(ctx context.Context, filters notification.Filters, page kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	query := httpx.PageQuery(page)
	filters.Encode(query)

	var resp kernel.Paginated[notification.Notification]
	if err := g.client.Get(ctx, basePath, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnreadCount - GET /api/notifications/unread-count
func (g *HTTPGateway) UnreadCount(ctx context.Context) (int, error) {
	var resp notification.UnreadCount
	if err := g.client.Get(ctx, basePath+"/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkRead - PATCH /api/notifications/:id/read
func (g *HTTPGateway) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	return g.client.Patch(ctx, httpx.Path(basePath, id.String(), "read"), nil, nil)
}

// MarkAllRead - PATCH /api/notifications/read-all
func (g *HTTPGateway) MarkAllRead(ctx context.Context) error {
	return g.client.Patch(ctx, basePath+"/read-all", nil, nil)
}

// Delete - DELETE /api/notifications/:id
func (g *HTTPGateway) Delete(ctx context.Context, id kernel.NotificationID) error {
	return g.client.Delete(ctx, httpx.Path(basePath, id.String()), nil)
}
