package jobsrv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/job/jobsrv"
)

type fakeGateway struct {
	job.Gateway
	jobs      []job.Job
	saveErr   error
	saved     []kernel.JobID
	unsaved   []kernel.JobID
	lastQuery job.Filters
}

func (f *fakeGateway) ListJobs(_ context.Context, filters job.Filters, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	f.lastQuery = filters
	start := min(page.Offset(), len(f.jobs))
	end := min(start+page.PageSize, len(f.jobs))
	return kernel.NewPaginated(f.jobs[start:end], page, len(f.jobs)), nil
}

func (f *fakeGateway) SaveJob(_ context.Context, id kernel.JobID) error {
	f.saved = append(f.saved, id)
	return f.saveErr
}

func (f *fakeGateway) UnsaveJob(_ context.Context, id kernel.JobID) error {
	f.unsaved = append(f.unsaved, id)
	return f.saveErr
}

func newFeed() *fakeGateway {
	return &fakeGateway{jobs: []job.Job{
		{ID: "j1", Title: "Go developer"},
		{ID: "j2", Title: "SRE", IsSaved: true},
		{ID: "j3", Title: "Data engineer"},
	}}
}

func TestToggleSaved(t *testing.T) {
	ctx := context.Background()
	gw := newFeed()
	b := jobsrv.NewBrowser(gw)
	if err := b.Initialize(ctx, listx.Query[job.Filters]{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := b.ToggleSaved(ctx, "j1"); err != nil {
		t.Fatalf("ToggleSaved(j1): %v", err)
	}
	if err := b.ToggleSaved(ctx, "j2"); err != nil {
		t.Fatalf("ToggleSaved(j2): %v", err)
	}
	if len(gw.saved) != 1 || gw.saved[0] != "j1" || len(gw.unsaved) != 1 || gw.unsaved[0] != "j2" {
		t.Errorf("saved %v unsaved %v", gw.saved, gw.unsaved)
	}

	s := b.Snapshot()
	if j, _ := s.Find("j1"); !j.IsSaved {
		t.Error("j1 not saved")
	}
	if j, _ := s.Find("j2"); j.IsSaved {
		t.Error("j2 still saved")
	}
}

func TestToggleSavedRollsBack(t *testing.T) {
	ctx := context.Background()
	gw := newFeed()
	gw.saveErr = errors.New("network down")

	surfaced := 0
	b := jobsrv.NewBrowser(gw, listx.WithErrorHandler[job.Job, job.Filters](func(error) { surfaced++ }))
	_ = b.Initialize(ctx, listx.Query[job.Filters]{})

	if err := b.ToggleSaved(ctx, "j3"); err == nil {
		t.Fatal("ToggleSaved should fail")
	}
	if j, _ := b.Snapshot().Find("j3"); j.IsSaved {
		t.Error("saved flag kept after failure")
	}
	if surfaced != 1 {
		t.Errorf("errors surfaced = %d, want 1", surfaced)
	}
}

func TestSearchKeepsOtherFilters(t *testing.T) {
	ctx := context.Background()
	gw := newFeed()
	b := jobsrv.NewBrowser(gw)
	remote := true
	_ = b.Initialize(ctx, listx.Query[job.Filters]{Filters: job.Filters{Location: "Lima", IsRemote: &remote}})

	if err := b.Search(ctx, "golang"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gw.lastQuery.Search != "golang" || gw.lastQuery.Location != "Lima" {
		t.Errorf("query = %+v", gw.lastQuery)
	}

	_ = b.Search(ctx, "")
	if gw.lastQuery.Search != "" || gw.lastQuery.Location != "Lima" {
		t.Errorf("query after clearing search = %+v", gw.lastQuery)
	}
}

func TestMarkApplied(t *testing.T) {
	ctx := context.Background()
	b := jobsrv.NewBrowser(newFeed())
	_ = b.Initialize(ctx, listx.Query[job.Filters]{})

	if err := b.MarkApplied(ctx, "j1"); err != nil {
		t.Fatalf("MarkApplied: %v", err)
	}
	if j, _ := b.Snapshot().Find("j1"); !j.HasApplied || j.ApplicationCount != 1 {
		t.Errorf("job = %+v", j)
	}
}
