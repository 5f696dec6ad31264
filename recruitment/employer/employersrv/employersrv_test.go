package employersrv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/employer/employersrv"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

type fakeGateway struct {
	jobs       []job.Job
	apps       []application.Application
	team       []employer.TeamMember
	dashboard  *employer.Dashboard
	interviews []interview.Interview

	err         error
	calls       []string
	created     []job.CreateJobRequest
	scheduled   []interview.ScheduleInterviewRequest
	listedTeams int
}

func (f *fakeGateway) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeGateway) CreateJob(_ context.Context, req job.CreateJobRequest) (*job.Job, error) {
	if err := f.record("CreateJob"); err != nil {
		return nil, err
	}
	f.created = append(f.created, req)
	j := job.Job{ID: "new", Title: req.Title}
	f.jobs = append(f.jobs, j)
	return &j, nil
}

func (f *fakeGateway) UpdateJob(_ context.Context, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	if err := f.record("UpdateJob"); err != nil {
		return nil, err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			if req.IsActive != nil {
				f.jobs[i].IsActive = *req.IsActive
			}
			if req.Status != nil {
				f.jobs[i].Status = *req.Status
			}
			j := f.jobs[i]
			return &j, nil
		}
	}
	return nil, job.ErrJobNotFound()
}

func (f *fakeGateway) DeleteJob(context.Context, kernel.JobID) error { return f.record("DeleteJob") }

func (f *fakeGateway) MyJobs(_ context.Context, filters employer.PostingFilters, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var out []job.Job
	for _, j := range f.jobs {
		if filters.Status == "" || j.Status == filters.Status {
			out = append(out, j)
		}
	}
	return kernel.NewPaginated(out, page, len(out)), nil
}

func (f *fakeGateway) JobApplications(_ context.Context, _ kernel.JobID, _ application.Filters, page kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	items := append([]application.Application(nil), f.apps...)
	return kernel.NewPaginated(items, page, len(items)), nil
}

func (f *fakeGateway) UpdateApplicationStatus(_ context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	if err := f.record("UpdateApplicationStatus"); err != nil {
		return nil, err
	}
	return &application.Application{ID: id, Status: req.Status, EmployerNotes: req.Notes}, nil
}

func (f *fakeGateway) RateApplication(_ context.Context, id kernel.ApplicationID, req application.RateApplicationRequest) (*application.Application, error) {
	if err := f.record("RateApplication"); err != nil {
		return nil, err
	}
	rating := req.Rating
	return &application.Application{ID: id, Status: application.ApplicationStatusReviewing, Rating: &rating}, nil
}

func (f *fakeGateway) ScheduleInterview(_ context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	if err := f.record("ScheduleInterview"); err != nil {
		return nil, err
	}
	f.scheduled = append(f.scheduled, req)
	return &interview.Interview{ID: "iv1", ApplicationID: req.ApplicationID}, nil
}

func (f *fakeGateway) UpdateInterview(_ context.Context, id kernel.InterviewID, _ interview.UpdateInterviewRequest) (*interview.Interview, error) {
	return &interview.Interview{ID: id}, f.record("UpdateInterview")
}

func (f *fakeGateway) CancelInterview(_ context.Context, id kernel.InterviewID, _ interview.CancelInterviewRequest) (*interview.Interview, error) {
	return &interview.Interview{ID: id, Status: interview.InterviewStatusCancelled}, f.record("CancelInterview")
}

func (f *fakeGateway) ListInterviews(_ context.Context, _ interview.Filters, page kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	f.calls = append(f.calls, "ListInterviews")
	items := append([]interview.Interview(nil), f.interviews...)
	return kernel.NewPaginated(items, page, len(items)), nil
}

func (f *fakeGateway) ListTeam(context.Context) ([]employer.TeamMember, error) {
	f.listedTeams++
	if f.err != nil {
		return nil, f.err
	}
	return append([]employer.TeamMember(nil), f.team...), nil
}

func (f *fakeGateway) InviteTeamMember(_ context.Context, req employer.InviteMemberRequest) (*employer.TeamMember, error) {
	if err := f.record("InviteTeamMember"); err != nil {
		return nil, err
	}
	m := employer.TeamMember{ID: "m-new", Email: req.Email, Role: req.Role, Status: employer.MemberStatusInvited}
	f.team = append(f.team, m)
	return &m, nil
}

func (f *fakeGateway) UpdateTeamMemberRole(_ context.Context, id kernel.TeamMemberID, req employer.UpdateRoleRequest) (*employer.TeamMember, error) {
	if err := f.record("UpdateTeamMemberRole"); err != nil {
		return nil, err
	}
	return &employer.TeamMember{ID: id, Role: req.Role}, nil
}

func (f *fakeGateway) RemoveTeamMember(context.Context, kernel.TeamMemberID) error {
	return f.record("RemoveTeamMember")
}

func (f *fakeGateway) Dashboard(context.Context) (*employer.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.dashboard
	return &d, nil
}

var never = listx.ConfirmFunc(func(context.Context, string) bool { return false })

func postings() *fakeGateway {
	return &fakeGateway{jobs: []job.Job{
		{ID: "j1", Title: "Go developer", Status: job.JobStatusPublished, IsActive: true, ApplicationCount: 3,
			EmploymentType: kernel.EmploymentFullTime, ExperienceLevel: kernel.ExperienceSenior},
		{ID: "j2", Title: "Designer", Status: job.JobStatusDraft},
	}}
}

func initPostings(t *testing.T, gw *fakeGateway, c listx.Confirmer) *employersrv.Postings {
	t.Helper()
	p := employersrv.NewPostings(gw, c)
	if err := p.Initialize(context.Background(), listx.Query[employer.PostingFilters]{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return p
}

func TestPostingsDelete(t *testing.T) {
	ctx := context.Background()

	gw := postings()
	p := initPostings(t, gw, never)
	if err := p.Delete(ctx, "j1"); !errors.Is(err, listx.ErrNotConfirmed) {
		t.Fatalf("Delete() error = %v, want ErrNotConfirmed", err)
	}
	if len(gw.calls) != 0 {
		t.Errorf("declined delete called %v", gw.calls)
	}

	gw = postings()
	p = initPostings(t, gw, listx.AlwaysConfirm)
	if err := p.Delete(ctx, "j1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	snap := p.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "j2" {
		t.Errorf("items = %+v", snap.Items)
	}
	if snap.Pagination.Total != 1 {
		t.Errorf("Total = %d, want 1", snap.Pagination.Total)
	}
}

func TestPostingsToggleActiveRollsBack(t *testing.T) {
	gw := postings()
	p := initPostings(t, gw, listx.AlwaysConfirm)
	gw.err = errors.New("unavailable")

	if err := p.ToggleActive(context.Background(), "j1"); err == nil {
		t.Fatal("ToggleActive() should fail")
	}
	j, _ := p.Snapshot().Find("j1")
	if !j.IsActive {
		t.Error("posting should be active again after the failure")
	}

	gw.err = nil
	if err := p.ToggleActive(context.Background(), "j1"); err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	j, _ = p.Snapshot().Find("j1")
	if j.IsActive {
		t.Error("posting should be inactive")
	}
}

func TestPostingsSetStatus(t *testing.T) {
	gw := postings()
	p := initPostings(t, gw, listx.AlwaysConfirm)

	if err := p.SetStatus(context.Background(), "j2", job.JobStatusPublished); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	j, _ := p.Snapshot().Find("j2")
	if !j.IsPublished() {
		t.Errorf("status = %s, want PUBLISHED", j.Status)
	}
}

func TestPostingFormSalaryRule(t *testing.T) {
	lo, hi := 5000.0, 3000.0
	gw := postings()
	p := initPostings(t, gw, listx.AlwaysConfirm)

	form := p.NewPostingForm(nil)
	form.Edit(func(r *job.CreateJobRequest) {
		r.Title = "Backend engineer"
		r.Description = "Build APIs"
		r.Location = "Lima"
		r.SalaryMin = &lo
		r.SalaryMax = &hi
	})
	err := form.Save(context.Background())
	if !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Save() error = %v, want FORM_INVALID", err)
	}
	errs := form.Errors()
	if len(errs) != 1 || errs[0].Field != "salary_max" {
		t.Errorf("Errors() = %v", errs)
	}
	if len(gw.created) != 0 {
		t.Error("invalid form should not reach the gateway")
	}

	hi = 8000
	form.Edit(func(r *job.CreateJobRequest) { r.SalaryMax = &hi })
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := p.Snapshot().Find("new"); !ok {
		t.Error("postings should be refreshed after the save")
	}
}

func TestPostingFormEditsExisting(t *testing.T) {
	gw := postings()
	existing := gw.jobs[0]
	form := employersrv.NewPostingForm(gw, &existing)
	if form.Data().Title != existing.Title {
		t.Fatalf("form not prefilled: %+v", form.Data())
	}
	form.Edit(func(r *job.CreateJobRequest) {
		r.Description = "Updated"
		r.Location = "Remote"
	})
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(gw.calls) != 1 || gw.calls[0] != "UpdateJob" {
		t.Errorf("calls = %v, want [UpdateJob]", gw.calls)
	}
}

func applicants() *fakeGateway {
	return &fakeGateway{apps: []application.Application{
		{ID: "a1", ApplicantName: "Grace", Status: application.ApplicationStatusPending},
		{ID: "a2", ApplicantName: "Linus", Status: application.ApplicationStatusShortlisted},
		{ID: "a3", ApplicantName: "Ken", Status: application.ApplicationStatusHired},
	}}
}

func initReview(t *testing.T, gw *fakeGateway) *employersrv.Review {
	t.Helper()
	r := employersrv.NewReview(gw, "j1")
	if err := r.Initialize(context.Background(), listx.Query[application.Filters]{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return r
}

func TestReviewUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		id         kernel.ApplicationID
		status     application.ApplicationStatus
		gatewayErr error
		wantCode   errx.Code
		wantStatus application.ApplicationStatus
		wantCalls  int
	}{
		{name: "allowed", id: "a1", status: application.ApplicationStatusReviewing, wantStatus: application.ApplicationStatusReviewing, wantCalls: 1},
		{name: "skips a step", id: "a1", status: application.ApplicationStatusHired, wantCode: application.CodeInvalidStatusTransition, wantStatus: application.ApplicationStatusPending},
		{name: "final state", id: "a3", status: application.ApplicationStatusRejected, wantCode: application.CodeInvalidStatusTransition, wantStatus: application.ApplicationStatusHired},
		{name: "backend refuses", id: "a2", status: application.ApplicationStatusInterviewing, gatewayErr: errors.New("boom"), wantStatus: application.ApplicationStatusShortlisted, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := applicants()
			r := initReview(t, gw)
			gw.err = tt.gatewayErr

			err := r.UpdateStatus(context.Background(), tt.id, tt.status, "")
			switch {
			case tt.wantCode != "":
				if !errx.IsCode(err, tt.wantCode) {
					t.Errorf("UpdateStatus() error = %v, want %s", err, tt.wantCode)
				}
			case tt.gatewayErr != nil:
				if err == nil {
					t.Error("UpdateStatus() should fail")
				}
			default:
				if err != nil {
					t.Errorf("UpdateStatus() error = %v", err)
				}
			}
			if len(gw.calls) != tt.wantCalls {
				t.Errorf("gateway calls = %d, want %d", len(gw.calls), tt.wantCalls)
			}
			app, _ := r.Snapshot().Find(tt.id.String())
			if app.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", app.Status, tt.wantStatus)
			}
		})
	}
}

func TestReviewRate(t *testing.T) {
	gw := applicants()
	r := initReview(t, gw)

	if err := r.Rate(context.Background(), "a1", 7, ""); !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Rate(7) error = %v, want FORM_INVALID", err)
	}
	if err := r.Rate(context.Background(), "a1", 4, "strong"); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	app, _ := r.Snapshot().Find("a1")
	if app.Rating == nil || *app.Rating != 4 {
		t.Errorf("Rating = %v, want 4", app.Rating)
	}
}

func TestReviewInterviewForm(t *testing.T) {
	gw := applicants()
	r := initReview(t, gw)

	if _, err := r.NewInterviewForm("a1"); !errx.IsCode(err, interview.CodeNotShortlisted) {
		t.Fatalf("NewInterviewForm(pending) error = %v, want NOT_SHORTLISTED", err)
	}

	form, err := r.NewInterviewForm("a2")
	if err != nil {
		t.Fatalf("NewInterviewForm() error = %v", err)
	}
	if form.Data().ApplicationID != "a2" || form.Data().DurationMinutes != 60 {
		t.Errorf("form defaults = %+v", form.Data())
	}
}

func TestTeam(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{team: []employer.TeamMember{
		{ID: "m1", Email: "owner@acme.io", Role: employer.TeamRoleOwner, Status: employer.MemberStatusActive},
		{ID: "m2", Email: "rec@acme.io", FirstName: "Rita", Role: employer.TeamRoleRecruiter, Status: employer.MemberStatusActive},
	}}

	team := employersrv.NewTeam(gw, never)
	if err := team.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := team.Remove(ctx, "m1"); !errx.IsCode(err, employer.CodeCannotRemoveOwner) {
		t.Errorf("Remove(owner) error = %v", err)
	}
	if err := team.Remove(ctx, "m2"); !errors.Is(err, listx.ErrNotConfirmed) {
		t.Errorf("Remove(declined) error = %v", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("calls = %v, want none", gw.calls)
	}

	team = employersrv.NewTeam(gw, listx.AlwaysConfirm)
	if err := team.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := team.UpdateRole(ctx, "m2", employer.TeamRoleAdmin); err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}
	if err := team.Remove(ctx, "m2"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := len(team.Members()); got != 1 {
		t.Errorf("members = %d, want 1", got)
	}

	form := team.NewInviteForm()
	form.Edit(func(r *employer.InviteMemberRequest) { r.Email = "new@acme.io" })
	if err := form.Save(ctx); err != nil {
		t.Fatalf("invite Save() error = %v", err)
	}
	if gw.listedTeams != 3 {
		t.Errorf("team loads = %d, want 3", gw.listedTeams)
	}
}

func TestDashboardIndependentOfLists(t *testing.T) {
	ctx := context.Background()
	gw := postings()
	gw.dashboard = &employer.Dashboard{TotalJobs: 42, ActiveJobs: 7}

	p := initPostings(t, gw, listx.AlwaysConfirm)
	view := employersrv.NewDashboardView(gw)
	if err := view.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := p.Delete(ctx, "j1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	d, _ := view.Data()
	if d.TotalJobs != 42 {
		t.Errorf("TotalJobs = %d, want the backend's 42", d.TotalJobs)
	}

	gw.err = errors.New("down")
	if err := view.Load(ctx); err == nil {
		t.Fatal("Load() should fail")
	}
	if d, ok := view.Data(); !ok || d.ActiveJobs != 7 {
		t.Errorf("previous numbers should be kept, got %+v", d)
	}
}

func TestInterviewGatewayUsesEmployerAPI(t *testing.T) {
	gw := &fakeGateway{interviews: []interview.Interview{{ID: "iv1"}}}
	ig := employersrv.InterviewGateway(gw, nil)

	page, err := ig.ListMine(context.Background(), interview.Filters{}, kernel.PaginationOptions{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("items = %d, want 1", len(page.Items))
	}
	if _, err := ig.Cancel(context.Background(), "iv1", interview.CancelInterviewRequest{}); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	want := []string{"ListInterviews", "CancelInterview"}
	if len(gw.calls) != 2 || gw.calls[0] != want[0] || gw.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", gw.calls, want)
	}
}
