package seekersrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

// ProfileForm edits the profile header
type ProfileForm = formx.Form[seeker.UpdateProfileRequest]

// NewProfileForm returns a form prefilled with the loaded profile
func (e *ProfileEditor) NewProfileForm() *ProfileForm {
	p, _ := e.Profile()
	save := func(ctx context.Context, req seeker.UpdateProfileRequest) error {
		updated, err := e.gateway.UpdateProfile(ctx, req)
		if err != nil {
			return err
		}
		e.replace(updated)
		return nil
	}
	return formx.New(seeker.ProfileRequestFrom(p), save,
		formx.WithFallback[seeker.UpdateProfileRequest]("Could not update your profile"),
	)
}

// SkillForm adds or edits a skill
type SkillForm = formx.Form[seeker.SkillRequest]

// NewSkillForm returns a form for a new skill, or for the skill id when it is set
func (e *ProfileEditor) NewSkillForm(id kernel.SkillID) *SkillForm {
	initial := seeker.SkillRequest{Level: seeker.SkillIntermediate}
	if p, ok := e.Profile(); ok && !id.IsEmpty() {
		if s, found := p.FindSkill(id); found {
			initial = seeker.SkillRequest{Name: s.Name, Level: s.Level, YearsOfExperience: s.YearsOfExperience}
		}
	}
	save := func(ctx context.Context, req seeker.SkillRequest) error {
		var err error
		if id.IsEmpty() {
			_, err = e.gateway.AddSkill(ctx, req)
		} else {
			_, err = e.gateway.UpdateSkill(ctx, id, req)
		}
		return err
	}
	return formx.New(initial, save,
		formx.WithFallback[seeker.SkillRequest]("Could not save the skill"),
		formx.OnSave(func(ctx context.Context, _ seeker.SkillRequest) { e.reload(ctx) }),
	)
}

// ExperienceForm adds or edits an experience entry
type ExperienceForm = formx.Form[seeker.ExperienceRequest]

// ExperienceRules require the end date after the start for past positions
var ExperienceRules = []formx.Rule[seeker.ExperienceRequest]{
	formx.Unless(
		func(r seeker.ExperienceRequest) bool { return r.IsCurrent },
		formx.After("end_date", "must be after the start date",
			func(r seeker.ExperienceRequest) *time.Time { return r.StartDate },
			func(r seeker.ExperienceRequest) *time.Time { return r.EndDate },
		),
	),
}

// NewExperienceForm returns a form for a new entry, or for the entry id when it is set
func (e *ProfileEditor) NewExperienceForm(id kernel.ExperienceID) *ExperienceForm {
	var initial seeker.ExperienceRequest
	if p, ok := e.Profile(); ok && !id.IsEmpty() {
		if x, found := p.FindExperience(id); found {
			initial = seeker.ExperienceRequestFrom(x)
		}
	}
	save := func(ctx context.Context, req seeker.ExperienceRequest) error {
		if req.IsCurrent {
			req.EndDate = nil
		}
		var err error
		if id.IsEmpty() {
			_, err = e.gateway.AddExperience(ctx, req)
		} else {
			_, err = e.gateway.UpdateExperience(ctx, id, req)
		}
		return err
	}
	return formx.New(initial, save,
		formx.WithRules(ExperienceRules...),
		formx.WithFallback[seeker.ExperienceRequest]("Could not save the experience entry"),
		formx.OnSave(func(ctx context.Context, _ seeker.ExperienceRequest) { e.reload(ctx) }),
	)
}

// EducationForm adds or edits an education entry
type EducationForm = formx.Form[seeker.EducationRequest]

// EducationRules require the end date after the start for finished studies
var EducationRules = []formx.Rule[seeker.EducationRequest]{
	formx.Unless(
		func(r seeker.EducationRequest) bool { return r.IsCurrent },
		formx.After("end_date", "must be after the start date",
			func(r seeker.EducationRequest) *time.Time { return r.StartDate },
			func(r seeker.EducationRequest) *time.Time { return r.EndDate },
		),
	),
}

// NewEducationForm returns a form for a new entry, or for the entry id when it is set
func (e *ProfileEditor) NewEducationForm(id kernel.EducationID) *EducationForm {
	var initial seeker.EducationRequest
	if p, ok := e.Profile(); ok && !id.IsEmpty() {
		if ed, found := p.FindEducation(id); found {
			initial = seeker.EducationRequestFrom(ed)
		}
	}
	save := func(ctx context.Context, req seeker.EducationRequest) error {
		if req.IsCurrent {
			req.EndDate = nil
		}
		var err error
		if id.IsEmpty() {
			_, err = e.gateway.AddEducation(ctx, req)
		} else {
			_, err = e.gateway.UpdateEducation(ctx, id, req)
		}
		return err
	}
	return formx.New(initial, save,
		formx.WithRules(EducationRules...),
		formx.WithFallback[seeker.EducationRequest]("Could not save the education entry"),
		formx.OnSave(func(ctx context.Context, _ seeker.EducationRequest) { e.reload(ctx) }),
	)
}
