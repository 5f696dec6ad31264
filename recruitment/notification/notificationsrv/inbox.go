package notificationsrv

import (
	"context"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
)

// List is the list controller type of the inbox
type List = listx.Controller[notification.Notification, notification.Filters]

// ReadFlag is the read marker of a notification
var ReadFlag = listx.Flag[notification.Notification]{
	Name: "is_read",
	Get:  func(n notification.Notification) bool { return n.IsRead },
	Set: func(n notification.Notification, v bool) notification.Notification {
		n.IsRead = v
		return n
	},
}

// Inbox drives the notification screen and the unread badge
type Inbox struct {
	*List
	gateway notification.Gateway

	mu     sync.RWMutex
	unread int
}

// NewInbox creates the notification list controller
func NewInbox(gateway notification.Gateway, opts ...listx.Option[notification.Notification, notification.Filters]) *Inbox {
	fetch := func(ctx context.Context, q listx.Query[notification.Filters]) (*kernel.Paginated[notification.Notification], error) {
		return gateway.List(ctx, q.Filters, kernel.PaginationOptions{Page: q.Page, PageSize: q.Limit})
	}
	opts = append([]listx.Option[notification.Notification, notification.Filters]{
		listx.WithName[notification.Notification, notification.Filters]("notifications"),
	}, opts...)
	return &Inbox{
		List:    listx.New(fetch, opts...),
		gateway: gateway,
	}
}

// Unread returns the last known unread count
func (i *Inbox) Unread() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.unread
}

// RefreshUnread reloads the unread count
func (i *Inbox) RefreshUnread(ctx context.Context) error {
	n, err := i.gateway.UnreadCount(ctx)
	if err != nil {
		return err
	}
	i.setUnread(n)
	return nil
}

// MarkRead marks a notification read at once and tells the backend. Already
// read notifications are left alone.
func (i *Inbox) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	n, ok := i.Snapshot().Find(id.String())
	if !ok {
		return notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
	}
	if n.IsRead {
		return nil
	}

	i.addUnread(-1)
	err := i.Toggle(ctx, id.String(), ReadFlag, func(ctx context.Context, _ bool) error {
		return i.gateway.MarkRead(ctx, id)
	})
	if err != nil {
		i.addUnread(1)
	}
	return err
}

// MarkAllRead marks everything read on the backend, then reloads the inbox
func (i *Inbox) MarkAllRead(ctx context.Context) error {
	if err := i.gateway.MarkAllRead(ctx); err != nil {
		return err
	}
	i.setUnread(0)
	return i.Refresh(ctx)
}

// Delete removes a notification once the backend deleted it
func (i *Inbox) Delete(ctx context.Context, id kernel.NotificationID) error {
	n, _ := i.Snapshot().Find(id.String())
	err := i.Remove(ctx, id.String(), func(ctx context.Context) error {
		return i.gateway.Delete(ctx, id)
	})
	if err == nil && !n.IsRead && n.ID != "" {
		i.addUnread(-1)
	}
	return err
}

func (i *Inbox) setUnread(n int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.unread = n
}

func (i *Inbox) addUnread(delta int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.unread = max(0, i.unread+delta)
}
