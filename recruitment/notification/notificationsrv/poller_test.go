package notificationsrv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/recruitment/notification/notificationsrv"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) RefreshUnread(context.Context) error {
	r.calls++
	return r.err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewPollerRejectsBadSpec(t *testing.T) {
	if _, err := notificationsrv.NewPoller(&countingRefresher{}, "every now and then"); err == nil {
		t.Fatal("NewPoller() should reject an invalid schedule")
	}
}

func TestPollerBacksOffAfterFailure(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	target := &countingRefresher{err: errors.New("unavailable")}

	p, err := notificationsrv.NewPoller(target, "@every 10s",
		notificationsrv.WithClock(clock.now),
		notificationsrv.WithBackoff(time.Minute, 10*time.Minute),
	)
	if err != nil {
		t.Fatalf("NewPoller() error = %v", err)
	}

	if !p.Tick(ctx) {
		t.Fatal("first tick should run")
	}

	clock.advance(30 * time.Second)
	if p.Tick(ctx) {
		t.Error("tick inside the pause should be skipped")
	}

	clock.advance(31 * time.Second)
	target.err = nil
	if !p.Tick(ctx) {
		t.Error("tick after the pause should run")
	}

	// recovered: the next tick runs right away
	if !p.Tick(ctx) {
		t.Error("tick after recovery should run")
	}
	if target.calls != 3 {
		t.Errorf("refresh calls = %d, want 3", target.calls)
	}
}

func TestPollerSkipsCancelledContext(t *testing.T) {
	target := &countingRefresher{}
	p, err := notificationsrv.NewPoller(target, "")
	if err != nil {
		t.Fatalf("NewPoller() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if p.Tick(ctx) {
		t.Error("tick should not run on a cancelled context")
	}
	if target.calls != 0 {
		t.Errorf("refresh calls = %d, want 0", target.calls)
	}
}
