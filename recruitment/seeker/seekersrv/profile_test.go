package seekersrv_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
	"github.com/Abraxas-365/hireboard/recruitment/seeker/seekersrv"
)

type fakeGateway struct {
	profile   seeker.Profile
	uploads   []seeker.Upload
	deleted   []string
	err       error
	loads     int
	saved     []job.Job
	unsaveErr error
}

func (f *fakeGateway) GetProfile(context.Context) (*seeker.Profile, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	p := f.profile
	return &p, nil
}

func (f *fakeGateway) UpdateProfile(_ context.Context, req seeker.UpdateProfileRequest) (*seeker.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.profile.FirstName = req.FirstName
	f.profile.LastName = req.LastName
	f.profile.Headline = req.Headline
	p := f.profile
	return &p, nil
}

func (f *fakeGateway) UploadResume(_ context.Context, file seeker.Upload) (kernel.FileURL, error) {
	f.uploads = append(f.uploads, file)
	return kernel.FileURL("https://cdn.example.com/" + file.FileName), f.err
}

func (f *fakeGateway) UploadProfilePicture(_ context.Context, file seeker.Upload) (kernel.FileURL, error) {
	f.uploads = append(f.uploads, file)
	return kernel.FileURL("https://cdn.example.com/" + file.FileName), f.err
}

func (f *fakeGateway) AddSkill(_ context.Context, req seeker.SkillRequest) (*seeker.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := seeker.Skill{ID: kernel.SkillID(fmt.Sprintf("s%d", len(f.profile.Skills)+1)), Name: req.Name, Level: req.Level}
	f.profile.Skills = append(f.profile.Skills, s)
	return &s, nil
}

func (f *fakeGateway) UpdateSkill(_ context.Context, id kernel.SkillID, req seeker.SkillRequest) (*seeker.Skill, error) {
	return &seeker.Skill{ID: id, Name: req.Name, Level: req.Level}, f.err
}

func (f *fakeGateway) DeleteSkill(_ context.Context, id kernel.SkillID) error {
	f.deleted = append(f.deleted, id.String())
	return f.err
}

func (f *fakeGateway) AddExperience(_ context.Context, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	if f.err != nil {
		return nil, f.err
	}
	x := seeker.Experience{ID: "x-new", Title: req.Title, Company: req.Company, StartDate: *req.StartDate, EndDate: req.EndDate, IsCurrent: req.IsCurrent}
	f.profile.Experiences = append(f.profile.Experiences, x)
	return &x, nil
}

func (f *fakeGateway) UpdateExperience(_ context.Context, id kernel.ExperienceID, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	return &seeker.Experience{ID: id, Title: req.Title}, f.err
}

func (f *fakeGateway) DeleteExperience(_ context.Context, id kernel.ExperienceID) error {
	f.deleted = append(f.deleted, id.String())
	return f.err
}

func (f *fakeGateway) AddEducation(_ context.Context, req seeker.EducationRequest) (*seeker.Education, error) {
	return &seeker.Education{ID: "e-new", Institution: req.Institution}, f.err
}

func (f *fakeGateway) UpdateEducation(_ context.Context, id kernel.EducationID, req seeker.EducationRequest) (*seeker.Education, error) {
	return &seeker.Education{ID: id, Institution: req.Institution}, f.err
}

func (f *fakeGateway) DeleteEducation(_ context.Context, id kernel.EducationID) error {
	f.deleted = append(f.deleted, id.String())
	return f.err
}

func (f *fakeGateway) ListSavedJobs(_ context.Context, page kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	items := append([]job.Job(nil), f.saved...)
	return kernel.NewPaginated(items, page, len(items)), nil
}

func (f *fakeGateway) SaveJob(context.Context, kernel.JobID) error { return f.err }

func (f *fakeGateway) UnsaveJob(_ context.Context, id kernel.JobID) error {
	if f.unsaveErr != nil {
		return f.unsaveErr
	}
	for i, j := range f.saved {
		if j.ID == id {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			break
		}
	}
	return nil
}

// memFiles is an in-memory fsx.FileReader
type memFiles map[string]fsx.FileInfo

func (m memFiles) Stat(_ context.Context, path string) (fsx.FileInfo, error) {
	info, ok := m[path]
	if !ok {
		return fsx.FileInfo{}, errors.New("no such file")
	}
	return info, nil
}

func (m memFiles) ReadFile(_ context.Context, path string) ([]byte, error) {
	info, ok := m[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return make([]byte, info.Size), nil
}

var never = listx.ConfirmFunc(func(context.Context, string) bool { return false })

func seededProfile() seeker.Profile {
	return seeker.Profile{
		UserID:    "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Skills:    []seeker.Skill{{ID: "s1", Name: "Go", Level: seeker.SkillExpert}},
		Experiences: []seeker.Experience{
			{ID: "x1", Title: "Engineer", Company: "Analytical Engines", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), IsCurrent: true},
		},
		Educations: []seeker.Education{
			{ID: "e1", Institution: "University of London", Degree: "BSc", StartDate: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func loadedEditor(t *testing.T, gw *fakeGateway, confirmer listx.Confirmer, files fsx.FileReader, opts ...seekersrv.EditorOption) *seekersrv.ProfileEditor {
	t.Helper()
	e := seekersrv.NewProfileEditor(gw, confirmer, files, opts...)
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

func TestLoadKeepsProfileOnFailure(t *testing.T) {
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})

	gw.err = errors.New("down")
	if err := e.Load(context.Background()); err == nil {
		t.Fatal("Load() should fail")
	}
	p, ok := e.Profile()
	if !ok || p.FullName() != "Ada Lovelace" {
		t.Errorf("profile after failed load = %+v", p)
	}
	if e.Err() == nil {
		t.Error("Err() should hold the load failure")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		confirmer listx.Confirmer
		wantErr   bool
		wantCalls int
	}{
		{name: "declined", confirmer: never, wantErr: true, wantCalls: 0},
		{name: "no confirmer", confirmer: nil, wantErr: true, wantCalls: 0},
		{name: "confirmed", confirmer: listx.AlwaysConfirm, wantErr: false, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{profile: seededProfile()}
			e := loadedEditor(t, gw, tt.confirmer, memFiles{})

			err := e.DeleteSkill(context.Background(), "s1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteSkill() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, listx.ErrNotConfirmed) {
				t.Errorf("DeleteSkill() error = %v, want ErrNotConfirmed", err)
			}
			if len(gw.deleted) != tt.wantCalls {
				t.Errorf("gateway calls = %d, want %d", len(gw.deleted), tt.wantCalls)
			}
			p, _ := e.Profile()
			_, still := p.FindSkill("s1")
			if still == !tt.wantErr {
				t.Errorf("skill present = %v after %s", still, tt.name)
			}
		})
	}
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
	gw.err = errors.New("boom")

	if err := e.DeleteExperience(context.Background(), "x1"); err == nil {
		t.Fatal("DeleteExperience() should fail")
	}
	p, _ := e.Profile()
	if _, ok := p.FindExperience("x1"); !ok {
		t.Error("experience should still be listed")
	}
}

func TestDeleteUnknownEducation(t *testing.T) {
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
	err := e.DeleteEducation(context.Background(), "nope")
	if !errx.IsCode(err, seeker.CodeEducationNotFound) {
		t.Errorf("DeleteEducation() error = %v, want EDUCATION_NOT_FOUND", err)
	}
}

func TestUploadResume(t *testing.T) {
	files := memFiles{
		"cv.pdf":     {Name: "cv.pdf", Size: 2048, ContentType: "application/pdf"},
		"huge.pdf":   {Name: "huge.pdf", Size: seekersrv.MaxUploadSize + 1, ContentType: "application/pdf"},
		"notes.txt":  {Name: "notes.txt", Size: 10, ContentType: "text/plain"},
		"scan.png":   {Name: "scan.png", Size: 4096, ContentType: "image/png"},
		"long.pdf":   {Name: "long.pdf", Size: 4096, ContentType: "application/pdf"},
		"s3-cv.docx": {Name: "s3-cv.docx", Size: 4096, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}
	pdfCheck := seekersrv.WithPDFCheck(func(data []byte) error {
		if len(data) == 4096 {
			return seeker.ErrTooManyPages().WithDetail("pages", 12)
		}
		return nil
	})

	tests := []struct {
		path     string
		wantCode errx.Code
	}{
		{path: "cv.pdf"},
		{path: "scan.png"},
		{path: "huge.pdf", wantCode: seeker.CodeFileTooLarge},
		{path: "notes.txt", wantCode: seeker.CodeUnsupportedFileType},
		{path: "s3-cv.docx", wantCode: seeker.CodeUnsupportedFileType},
		{path: "long.pdf", wantCode: seeker.CodeTooManyPages},
		{path: "missing.pdf", wantCode: seeker.CodeFileReadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gw := &fakeGateway{profile: seededProfile()}
			e := loadedEditor(t, gw, listx.AlwaysConfirm, files, pdfCheck)

			url, err := e.UploadResume(context.Background(), tt.path)
			if tt.wantCode != "" {
				if !errx.IsCode(err, tt.wantCode) {
					t.Fatalf("UploadResume() error = %v, want %s", err, tt.wantCode)
				}
				if len(gw.uploads) != 0 {
					t.Error("nothing should be sent when the file is rejected")
				}
				return
			}
			if err != nil {
				t.Fatalf("UploadResume() error = %v", err)
			}
			p, _ := e.Profile()
			if p.ResumeURL != url || !p.HasResume() {
				t.Errorf("ResumeURL = %q, want %q", p.ResumeURL, url)
			}
		})
	}
}

func TestUploadProfilePictureRejectsPDF(t *testing.T) {
	files := memFiles{"me.pdf": {Name: "me.pdf", Size: 100, ContentType: "application/pdf"}}
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, files)

	_, err := e.UploadProfilePicture(context.Background(), "me.pdf")
	if !errx.IsCode(err, seeker.CodeUnsupportedFileType) {
		t.Errorf("UploadProfilePicture() error = %v, want UNSUPPORTED_FILE_TYPE", err)
	}
}

func TestExperienceFormDates(t *testing.T) {
	start := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, -1, 0)
	after := start.AddDate(1, 0, 0)

	tests := []struct {
		name      string
		req       seeker.ExperienceRequest
		wantField string
	}{
		{name: "end before start", req: seeker.ExperienceRequest{Title: "Dev", Company: "Acme", StartDate: &start, EndDate: &before}, wantField: "end_date"},
		{name: "end missing", req: seeker.ExperienceRequest{Title: "Dev", Company: "Acme", StartDate: &start}, wantField: "end_date"},
		{name: "current ignores end", req: seeker.ExperienceRequest{Title: "Dev", Company: "Acme", StartDate: &start, EndDate: &before, IsCurrent: true}},
		{name: "valid range", req: seeker.ExperienceRequest{Title: "Dev", Company: "Acme", StartDate: &start, EndDate: &after}},
		{name: "start missing", req: seeker.ExperienceRequest{Title: "Dev", Company: "Acme", IsCurrent: true}, wantField: "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{profile: seededProfile()}
			e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
			form := e.NewExperienceForm("")
			form.Reset(tt.req)

			errs := form.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 || errs[0].Field != tt.wantField {
				t.Errorf("Validate() = %v, want error on %s", errs, tt.wantField)
			}
		})
	}
}

func TestExperienceFormSaveReloadsProfile(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	form := e.NewExperienceForm("")
	form.Edit(func(r *seeker.ExperienceRequest) {
		r.Title = "Intern"
		r.Company = "Babbage & Co"
		r.StartDate = &start
		r.IsCurrent = true
	})
	if err := form.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	p, _ := e.Profile()
	if len(p.Experiences) != 2 {
		t.Errorf("experiences = %d, want 2 after reload", len(p.Experiences))
	}
	if gw.loads != 2 {
		t.Errorf("profile loads = %d, want 2", gw.loads)
	}
}

func TestSkillFormFailureKeepsData(t *testing.T) {
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
	gw.err = errx.FromHTTPResponse(409, []byte(`{"error":"Conflict","code":"SEEKER_DUPLICATE_SKILL","message":"You already listed this skill"}`))

	form := e.NewSkillForm("")
	form.Edit(func(r *seeker.SkillRequest) { r.Name = "Go" })
	if err := form.Save(context.Background()); err == nil {
		t.Fatal("Save() should fail")
	}
	if form.Data().Name != "Go" {
		t.Error("form data should be kept")
	}
	if got := form.Message(); got != "You already listed this skill" {
		t.Errorf("Message() = %q", got)
	}
}

func TestProfileFormValidation(t *testing.T) {
	gw := &fakeGateway{profile: seededProfile()}
	e := loadedEditor(t, gw, listx.AlwaysConfirm, memFiles{})
	form := e.NewProfileForm()
	if form.Data().FirstName != "Ada" {
		t.Fatalf("form should be prefilled, got %+v", form.Data())
	}

	form.Edit(func(r *seeker.UpdateProfileRequest) { r.WebsiteURL = "not a url" })
	err := form.Save(context.Background())
	if !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Save() error = %v, want FORM_INVALID", err)
	}

	form.Edit(func(r *seeker.UpdateProfileRequest) {
		r.WebsiteURL = "https://ada.dev"
		r.Headline = "Mathematician"
	})
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	p, _ := e.Profile()
	if p.Headline != "Mathematician" {
		t.Errorf("Headline = %q", p.Headline)
	}
}

func TestSavedJobsUnsave(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{saved: []job.Job{{ID: "j1", Title: "Go"}, {ID: "j2", Title: "Rust"}}}
	list := seekersrv.NewSavedJobs(gw)
	if err := list.Initialize(ctx, listx.Query[seekersrv.NoFilters]{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	gw.unsaveErr = errors.New("nope")
	if err := list.Unsave(ctx, "j1"); err == nil {
		t.Fatal("Unsave() should fail")
	}
	if len(list.Snapshot().Items) != 2 {
		t.Error("failed unsave should keep the job")
	}

	gw.unsaveErr = nil
	if err := list.Unsave(ctx, "j1"); err != nil {
		t.Fatalf("Unsave() error = %v", err)
	}
	snap := list.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "j2" {
		t.Errorf("items = %+v", snap.Items)
	}
}
