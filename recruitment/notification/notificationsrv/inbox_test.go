package notificationsrv_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/Abraxas-365/hireboard/recruitment/notification/notificationsrv"
)

type fakeGateway struct {
	mu          sync.Mutex
	items       []notification.Notification
	markErr     error
	deleteErr   error
	unreadErr   error
	markCalls   int
	readAllCall int
}

func (g *fakeGateway) List(_ context.Context, _ notification.Filters, page kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := append([]notification.Notification(nil), g.items...)
	return kernel.NewPaginated(items, page, len(items)), nil
}

func (g *fakeGateway) UnreadCount(context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unreadErr != nil {
		return 0, g.unreadErr
	}
	n := 0
	for _, it := range g.items {
		if !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (g *fakeGateway) MarkRead(_ context.Context, id kernel.NotificationID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markCalls++
	if g.markErr != nil {
		return g.markErr
	}
	for i := range g.items {
		if g.items[i].ID == id {
			g.items[i].IsRead = true
		}
	}
	return nil
}

func (g *fakeGateway) MarkAllRead(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readAllCall++
	for i := range g.items {
		g.items[i].IsRead = true
	}
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, id kernel.NotificationID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i := range g.items {
		if g.items[i].ID == id {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	return nil
}

func seeded() *fakeGateway {
	return &fakeGateway{items: []notification.Notification{
		{ID: "n1", Type: notification.TypeApplicationUpdate, Title: "Shortlisted"},
		{ID: "n2", Type: notification.TypeInterview, Title: "Interview booked"},
		{ID: "n3", Type: notification.TypeSystem, Title: "Welcome", IsRead: true},
	}}
}

func loaded(t *testing.T, gw *fakeGateway) *notificationsrv.Inbox {
	t.Helper()
	ctx := context.Background()
	inbox := notificationsrv.NewInbox(gw)
	if err := inbox.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := inbox.RefreshUnread(ctx); err != nil {
		t.Fatalf("RefreshUnread() error = %v", err)
	}
	return inbox
}

func TestInboxMarkRead(t *testing.T) {
	gw := seeded()
	inbox := loaded(t, gw)
	if got := inbox.Unread(); got != 2 {
		t.Fatalf("Unread() = %d, want 2", got)
	}

	if err := inbox.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	n, _ := inbox.Snapshot().Find("n1")
	if !n.IsRead {
		t.Error("n1 should be read")
	}
	if got := inbox.Unread(); got != 1 {
		t.Errorf("Unread() = %d, want 1", got)
	}

	// already read: no backend call
	if err := inbox.MarkRead(context.Background(), "n3"); err != nil {
		t.Fatalf("MarkRead(read) error = %v", err)
	}
	if gw.markCalls != 1 {
		t.Errorf("backend calls = %d, want 1", gw.markCalls)
	}
}

func TestInboxMarkReadRollsBack(t *testing.T) {
	gw := seeded()
	inbox := loaded(t, gw)
	gw.markErr = errors.New("boom")

	if err := inbox.MarkRead(context.Background(), "n2"); err == nil {
		t.Fatal("MarkRead() should fail")
	}
	n, _ := inbox.Snapshot().Find("n2")
	if n.IsRead {
		t.Error("n2 should be unread again")
	}
	if got := inbox.Unread(); got != 2 {
		t.Errorf("Unread() = %d, want 2", got)
	}
	if inbox.Snapshot().Err == nil {
		t.Error("failure should be surfaced")
	}
}

func TestInboxMarkReadUnknown(t *testing.T) {
	inbox := loaded(t, seeded())
	err := inbox.MarkRead(context.Background(), "missing")
	if !errx.IsCode(err, notification.CodeNotificationNotFound) {
		t.Errorf("MarkRead() error = %v, want NOT_FOUND", err)
	}
}

func TestInboxMarkAllRead(t *testing.T) {
	gw := seeded()
	inbox := loaded(t, gw)

	if err := inbox.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if got := inbox.Unread(); got != 0 {
		t.Errorf("Unread() = %d, want 0", got)
	}
	for _, n := range inbox.Snapshot().Items {
		if !n.IsRead {
			t.Errorf("%s still unread after reload", n.ID)
		}
	}
}

func TestInboxDelete(t *testing.T) {
	gw := seeded()
	inbox := loaded(t, gw)

	gw.deleteErr = errors.New("nope")
	if err := inbox.Delete(context.Background(), "n1"); err == nil {
		t.Fatal("Delete() should fail")
	}
	if _, ok := inbox.Snapshot().Find("n1"); !ok {
		t.Error("n1 should stay after a failed delete")
	}

	gw.deleteErr = nil
	if err := inbox.Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	snap := inbox.Snapshot()
	if _, ok := snap.Find("n1"); ok {
		t.Error("n1 should be gone")
	}
	if snap.Pagination.Total != 2 {
		t.Errorf("Total = %d, want 2", snap.Pagination.Total)
	}
	if got := inbox.Unread(); got != 1 {
		t.Errorf("Unread() = %d, want 1", got)
	}
}
