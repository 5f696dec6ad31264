package seekersrv

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

// ProfileEditor holds the signed-in job seeker's profile and the operations
// that change it
type ProfileEditor struct {
	gateway   seeker.Gateway
	confirmer listx.Confirmer
	files     fsx.FileReader
	checkPDF  PDFCheck

	mu      sync.RWMutex
	profile *seeker.Profile
	loading bool
	err     error
}

// EditorOption configures a ProfileEditor
type EditorOption func(*ProfileEditor)

// WithPDFCheck replaces the page check run before a PDF resume is uploaded
func WithPDFCheck(check PDFCheck) EditorOption {
	return func(e *ProfileEditor) { e.checkPDF = check }
}

// NewProfileEditor creates the profile controller. files resolves the paths
// given to the upload methods.
func NewProfileEditor(gateway seeker.Gateway, confirmer listx.Confirmer, files fsx.FileReader, opts ...EditorOption) *ProfileEditor {
	e := &ProfileEditor{
		gateway:   gateway,
		confirmer: confirmer,
		files:     files,
		checkPDF:  CheckResumePages,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the profile. The last loaded profile is kept on failure.
func (e *ProfileEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	p, err := e.gateway.GetProfile(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	e.err = err
	if err != nil {
		return err
	}
	e.profile = p
	return nil
}

// Profile returns a copy of the loaded profile
func (e *ProfileEditor) Profile() (seeker.Profile, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.profile == nil {
		return seeker.Profile{}, false
	}
	p := *e.profile
	p.Skills = slices.Clone(p.Skills)
	p.Experiences = slices.Clone(p.Experiences)
	p.Educations = slices.Clone(p.Educations)
	return p, true
}

// Loading reports whether a load is in flight
func (e *ProfileEditor) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loading
}

// Err returns the error of the last load
func (e *ProfileEditor) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}

// DeleteSkill asks for confirmation, then removes the skill
func (e *ProfileEditor) DeleteSkill(ctx context.Context, id kernel.SkillID) error {
	p, _ := e.Profile()
	s, ok := p.FindSkill(id)
	if !ok {
		return seeker.ErrSkillNotFound().WithDetail("skill_id", id.String())
	}
	if err := listx.RequireConfirmation(ctx, e.confirmer, fmt.Sprintf("Remove the skill %q?", s.Name)); err != nil {
		return err
	}
	if err := e.gateway.DeleteSkill(ctx, id); err != nil {
		return err
	}
	e.edit(func(p *seeker.Profile) {
		p.Skills = slices.DeleteFunc(p.Skills, func(s seeker.Skill) bool { return s.ID == id })
	})
	return nil
}

// DeleteExperience asks for confirmation, then removes the entry
func (e *ProfileEditor) DeleteExperience(ctx context.Context, id kernel.ExperienceID) error {
	p, _ := e.Profile()
	x, ok := p.FindExperience(id)
	if !ok {
		return seeker.ErrExperienceNotFound().WithDetail("experience_id", id.String())
	}
	prompt := fmt.Sprintf("Remove %s at %s from your experience?", x.Title, x.Company)
	if err := listx.RequireConfirmation(ctx, e.confirmer, prompt); err != nil {
		return err
	}
	if err := e.gateway.DeleteExperience(ctx, id); err != nil {
		return err
	}
	e.edit(func(p *seeker.Profile) {
		p.Experiences = slices.DeleteFunc(p.Experiences, func(x seeker.Experience) bool { return x.ID == id })
	})
	return nil
}

// DeleteEducation asks for confirmation, then removes the entry
func (e *ProfileEditor) DeleteEducation(ctx context.Context, id kernel.EducationID) error {
	p, _ := e.Profile()
	ed, ok := p.FindEducation(id)
	if !ok {
		return seeker.ErrEducationNotFound().WithDetail("education_id", id.String())
	}
	prompt := fmt.Sprintf("Remove %s at %s from your education?", ed.Degree, ed.Institution)
	if err := listx.RequireConfirmation(ctx, e.confirmer, prompt); err != nil {
		return err
	}
	if err := e.gateway.DeleteEducation(ctx, id); err != nil {
		return err
	}
	e.edit(func(p *seeker.Profile) {
		p.Educations = slices.DeleteFunc(p.Educations, func(ed seeker.Education) bool { return ed.ID == id })
	})
	return nil
}

// UploadResume reads path, checks it and sends it as the profile resume
func (e *ProfileEditor) UploadResume(ctx context.Context, path string) (kernel.FileURL, error) {
	file, err := readUpload(ctx, e.files, path, ResumeTypes)
	if err != nil {
		return "", err
	}
	if file.ContentType == "application/pdf" {
		if err := e.checkPDF(file.Data); err != nil {
			return "", err
		}
	}

	url, err := e.gateway.UploadResume(ctx, file)
	if err != nil {
		return "", err
	}
	logx.Infof("Resume %s uploaded (%d bytes)", file.FileName, len(file.Data))
	e.edit(func(p *seeker.Profile) { p.ResumeURL = url })
	return url, nil
}

// UploadProfilePicture reads path, checks it and sends it as the profile picture
func (e *ProfileEditor) UploadProfilePicture(ctx context.Context, path string) (kernel.FileURL, error) {
	file, err := readUpload(ctx, e.files, path, PictureTypes)
	if err != nil {
		return "", err
	}

	url, err := e.gateway.UploadProfilePicture(ctx, file)
	if err != nil {
		return "", err
	}
	e.edit(func(p *seeker.Profile) { p.ProfilePictureURL = url })
	return url, nil
}

// reload refreshes after a form save. Failures are logged; the form already
// succeeded.
func (e *ProfileEditor) reload(ctx context.Context) {
	if err := e.Load(ctx); err != nil {
		logx.Warnf("Profile reload after save failed: %v", err)
	}
}

func (e *ProfileEditor) edit(fn func(*seeker.Profile)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile != nil {
		fn(e.profile)
	}
}

func (e *ProfileEditor) replace(p *seeker.Profile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile = p
}
