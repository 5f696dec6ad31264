package notificationsrv

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
)

// DefaultPollSpec refreshes the badge every minute
const DefaultPollSpec = "@every 1m"

// Poller refreshes the unread badge on a cron schedule. After a failure it
// skips ticks until an exponentially growing pause has passed.
type Poller struct {
	cron    *cron.Cron
	spec    string
	refresh func(ctx context.Context) error
	timeout time.Duration
	now     func() time.Time

	mu        sync.Mutex
	policy    *backoff.ExponentialBackOff
	notBefore time.Time
	failures  int
}

// Refresher reloads the unread counter. *Inbox satisfies it.
type Refresher interface {
	RefreshUnread(ctx context.Context) error
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) { p.now = now }
}

// WithBackoff sets the first and the longest pause after failures
func WithBackoff(initial, maxInterval time.Duration) PollerOption {
	return func(p *Poller) {
		p.policy.InitialInterval = initial
		p.policy.MaxInterval = maxInterval
		p.policy.Reset()
	}
}

// NewPoller creates a poller for target. spec is a robfig/cron schedule such as
// "@every 30s".
func NewPoller(target Refresher, spec string, opts ...PollerOption) (*Poller, error) {
	if spec == "" {
		spec = DefaultPollSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, notification.ErrInvalidPollSpec().WithDetail("spec", spec).WithCause(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 30 * time.Second
	policy.MaxInterval = 15 * time.Minute
	policy.MaxElapsedTime = 0

	policy.RandomizationFactor = 0

	p := &Poller{
		cron:    cron.New(),
		spec:    spec,
		refresh: target.RefreshUnread,
		timeout: 10 * time.Second,
		now:     time.Now,
		policy:  policy,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.policy.Clock = clockFunc(p.now)
	p.policy.Reset()
	return p, nil
}

// Start schedules the refresh. Ticks stop when ctx is done or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	if _, err := p.cron.AddFunc(p.spec, func() { p.Tick(ctx) }); err != nil {
		return notification.ErrInvalidPollSpec().WithDetail("spec", p.spec).WithCause(err)
	}
	p.cron.Start()
	logx.Debugf("Notification poller started (%s)", p.spec)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running tick
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
}

// Tick runs one refresh unless the poller is backing off. It reports whether
// a refresh was attempted.
func (p *Poller) Tick(ctx context.Context) bool {
	p.mu.Lock()
	if p.now().Before(p.notBefore) {
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := p.refresh(callCtx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.failures++
		wait := p.policy.NextBackOff()
		p.notBefore = p.now().Add(wait)
		logx.Warnf("Unread count refresh failed (%d in a row), pausing %s: %v", p.failures, wait.Round(time.Second), err)
		return true
	}
	if p.failures > 0 {
		logx.Infof("Unread count refresh recovered after %d failures", p.failures)
	}
	p.failures = 0
	p.policy.Reset()
	p.notBefore = time.Time{}
	return true
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }
