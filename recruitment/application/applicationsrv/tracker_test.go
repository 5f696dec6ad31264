package applicationsrv_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/application/applicationsrv"
)

type fakeGateway struct {
	apps      []application.Application
	withdrawn []kernel.ApplicationID
	err       error
	submitted []application.SubmitApplicationRequest
}

func (f *fakeGateway) Submit(_ context.Context, req application.SubmitApplicationRequest) (*application.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = append(f.submitted, req)
	return &application.Application{ID: "new", JobID: req.JobID, Status: application.ApplicationStatusPending}, nil
}

func (f *fakeGateway) ListMine(_ context.Context, filters application.Filters, page kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var out []application.Application
	for _, a := range f.apps {
		if filters.Status == "" || a.Status == filters.Status {
			out = append(out, a)
		}
	}
	return kernel.NewPaginated(out, page, len(out)), nil
}

func (f *fakeGateway) Get(context.Context, kernel.ApplicationID) (*application.Application, error) {
	return nil, application.ErrApplicationNotFound()
}

func (f *fakeGateway) Withdraw(_ context.Context, id kernel.ApplicationID) error {
	f.withdrawn = append(f.withdrawn, id)
	return f.err
}

func seed() *fakeGateway {
	return &fakeGateway{apps: []application.Application{
		{ID: "a1", JobTitle: "Go developer", Status: application.ApplicationStatusPending},
		{ID: "a2", JobTitle: "SRE", Status: application.ApplicationStatusReviewing},
		{ID: "a3", JobTitle: "DBA", Status: application.ApplicationStatusHired},
	}}
}

func TestWithdrawRemovesOnlyThatApplication(t *testing.T) {
	ctx := context.Background()
	gw := seed()
	tr := applicationsrv.NewTracker(gw, listx.AlwaysConfirm)
	if err := tr.Initialize(ctx, listx.Query[application.Filters]{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	before := tr.Snapshot()

	if err := tr.Withdraw(ctx, "a1"); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	after := tr.Snapshot()

	if len(after.Items) != len(before.Items)-1 {
		t.Fatalf("items = %d, want %d", len(after.Items), len(before.Items)-1)
	}
	if after.Pagination.Total != before.Pagination.Total-1 {
		t.Errorf("total = %d, want %d", after.Pagination.Total, before.Pagination.Total-1)
	}
	if !reflect.DeepEqual(after.Items, before.Items[1:]) {
		t.Errorf("other items changed: %+v", after.Items)
	}
	if len(gw.withdrawn) != 1 || gw.withdrawn[0] != "a1" {
		t.Errorf("withdrawn = %v", gw.withdrawn)
	}
}

func TestWithdrawNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	gw := seed()
	var prompt string
	decline := listx.ConfirmFunc(func(_ context.Context, p string) bool {
		prompt = p
		return false
	})
	tr := applicationsrv.NewTracker(gw, decline)
	_ = tr.Initialize(ctx, listx.Query[application.Filters]{})

	if err := tr.Withdraw(ctx, "a2"); !errors.Is(err, listx.ErrNotConfirmed) {
		t.Fatalf("Withdraw error = %v, want ErrNotConfirmed", err)
	}
	if len(gw.withdrawn) != 0 {
		t.Error("gateway called without confirmation")
	}
	if prompt != "Withdraw your application to SRE?" {
		t.Errorf("prompt = %q", prompt)
	}
	if len(tr.Snapshot().Items) != 3 {
		t.Error("item removed")
	}
}

func TestWithdrawFailureKeepsItem(t *testing.T) {
	ctx := context.Background()
	gw := seed()
	gw.err = errx.FromHTTPResponse(500, nil)
	tr := applicationsrv.NewTracker(gw, listx.AlwaysConfirm)
	_ = tr.Initialize(ctx, listx.Query[application.Filters]{})

	if err := tr.Withdraw(ctx, "a1"); err == nil {
		t.Fatal("Withdraw should fail")
	}
	if _, ok := tr.Snapshot().Find("a1"); !ok {
		t.Error("item removed after a failed withdraw")
	}
	if tr.Snapshot().Phase() != listx.StatusError {
		t.Error("error not surfaced")
	}
}

func TestWithdrawClosedApplication(t *testing.T) {
	ctx := context.Background()
	gw := seed()
	tr := applicationsrv.NewTracker(gw, listx.AlwaysConfirm)
	_ = tr.Initialize(ctx, listx.Query[application.Filters]{})

	if err := tr.Withdraw(ctx, "a3"); !errx.IsCode(err, application.CodeCannotWithdraw) {
		t.Fatalf("Withdraw(hired) error = %v", err)
	}
	if len(gw.withdrawn) != 0 {
		t.Error("gateway called for a closed application")
	}
}

func TestFilterByStatus(t *testing.T) {
	ctx := context.Background()
	tr := applicationsrv.NewTracker(seed(), listx.AlwaysConfirm)
	_ = tr.Initialize(ctx, listx.Query[application.Filters]{})

	if err := tr.FilterByStatus(ctx, application.ApplicationStatusReviewing); err != nil {
		t.Fatalf("FilterByStatus: %v", err)
	}
	if s := tr.Snapshot(); len(s.Items) != 1 || s.Items[0].ID != "a2" {
		t.Errorf("items = %+v", s.Items)
	}
	_ = tr.FilterByStatus(ctx, "")
	if got := len(tr.Snapshot().Items); got != 3 {
		t.Errorf("items after clearing status = %d", got)
	}
}

func TestApplyForm(t *testing.T) {
	ctx := context.Background()
	gw := seed()
	var applied *application.Application
	form := applicationsrv.NewApplyForm(gw, "j-9", func(_ context.Context, app *application.Application) {
		applied = app
	})

	form.Edit(func(r *application.SubmitApplicationRequest) { r.ResumeURL = "not a url" })
	if err := form.Save(ctx); !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Save with bad resume url = %v", err)
	}

	form.Edit(func(r *application.SubmitApplicationRequest) {
		r.ResumeURL = "https://files.example.com/cv.pdf"
		r.CoverLetter = "Hello"
	})
	if err := form.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if applied == nil || applied.JobID != "j-9" || len(gw.submitted) != 1 {
		t.Errorf("applied = %+v, submitted %v", applied, gw.submitted)
	}
}
