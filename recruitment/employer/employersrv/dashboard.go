package employersrv

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/recruitment/employer"
)

// DashboardView holds the employer's aggregate numbers. It is loaded on its
// own and never reconciled with the posting or applicant lists.
type DashboardView struct {
	gateway employer.Gateway

	mu       sync.RWMutex
	data     *employer.Dashboard
	err      error
	loadedAt time.Time
}

// NewDashboardView creates the dashboard controller
func NewDashboardView(gateway employer.Gateway) *DashboardView {
	return &DashboardView{gateway: gateway}
}

// Load fetches the aggregates. The previous numbers are kept on failure.
func (d *DashboardView) Load(ctx context.Context) error {
	data, err := d.gateway.Dashboard(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
	if err != nil {
		return err
	}
	d.data = data
	d.loadedAt = time.Now()
	return nil
}

// Data returns the last loaded aggregates
func (d *DashboardView) Data() (employer.Dashboard, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.data == nil {
		return employer.Dashboard{}, false
	}
	return *d.data, true
}

// Err returns the error of the last load
func (d *DashboardView) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

// LoadedAt returns when the numbers were last fetched
func (d *DashboardView) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}
