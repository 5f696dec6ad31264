package notification

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Gateway is the notification API of the signed-in user
type Gateway interface {
	// List retrieves notifications, newest first
	List(ctx context.Context, filters Filters, page kernel.PaginationOptions) (*kernel.Paginated[Notification], error)

	// UnreadCount returns the number of unread notifications
	UnreadCount(ctx context.Context) (int, error)

	// MarkRead marks one notification as read
	MarkRead(ctx context.Context, id kernel.NotificationID) error

	// MarkAllRead marks every notification as read
	MarkAllRead(ctx context.Context) error

	// Delete removes a notification
	Delete(ctx context.Context, id kernel.NotificationID) error
}
