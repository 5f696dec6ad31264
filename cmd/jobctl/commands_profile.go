package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
	"github.com/Abraxas-365/hireboard/recruitment/seeker/seekersrv"
)

func init() {
	register("profile", "show or edit your job seeker profile", runProfile)
	register("upload", "upload a resume or profile picture (local path or s3://)", runUpload)
	register("skill", "add, edit or delete a skill", runSkill)
	register("experience", "add, edit or delete an experience entry", runExperience)
	register("education", "add, edit or delete an education entry", runEducation)
}

// saveForm saves f and reduces a gateway failure to the form's message
func saveForm[D any](ctx context.Context, f *formx.Form[D]) error {
	err := f.Save(ctx)
	if err == nil || errx.IsCode(err, formx.CodeInvalid) {
		return err
	}
	if msg := f.Message(); msg != "" {
		return errors.New(msg)
	}
	return err
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or YYYY-MM", s)
}

func loadEditor(ctx context.Context, app *Container) (*seekersrv.ProfileEditor, error) {
	editor := seekersrv.NewProfileEditor(app.Seeker, app.Confirmer, app.FileSystem)
	if err := editor.Load(ctx); err != nil {
		return nil, err
	}
	return editor, nil
}

func runProfile(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("profile")
	headline := fs.String("headline", "", "headline")
	bio := fs.String("bio", "", "short bio")
	location := fs.String("location", "", "location")
	phone := fs.String("phone", "", "phone in E.164 format")
	website := fs.String("website", "", "website URL")
	linkedin := fs.String("linkedin", "", "LinkedIn URL")
	github := fs.String("github", "", "GitHub URL")
	salary := fs.Float64("desired-salary", 0, "desired salary")
	openToWork := fs.Bool("open-to-work", false, "open to work")
	if err := fs.Parse(args); err != nil {
		return err
	}

	editor, err := loadEditor(ctx, app)
	if err != nil {
		return err
	}

	if fs.NFlag() > 0 {
		form := editor.NewProfileForm()
		form.Edit(func(r *seeker.UpdateProfileRequest) {
			set := func(name string, dst *string, v string) {
				if fs.Changed(name) {
					*dst = v
				}
			}
			set("headline", &r.Headline, *headline)
			set("bio", &r.Bio, *bio)
			set("location", &r.Location, *location)
			set("website", &r.WebsiteURL, *website)
			set("linkedin", &r.LinkedInURL, *linkedin)
			set("github", &r.GithubURL, *github)
			if fs.Changed("phone") {
				r.Phone = kernel.Phone(*phone)
			}
			if fs.Changed("desired-salary") {
				r.DesiredSalary = salary
			}
			if fs.Changed("open-to-work") {
				r.OpenToWork = *openToWork
			}
		})
		if err := saveForm(ctx, form); err != nil {
			return err
		}
		fmt.Fprintln(out, "Profile updated.")
	}

	p, _ := editor.Profile()
	printProfile(p)
	return nil
}

func printProfile(p seeker.Profile) {
	fmt.Fprintf(out, "%s <%s>\n", p.FullName(), p.Email)
	if p.Headline != "" {
		fmt.Fprintln(out, p.Headline)
	}
	if p.Location != "" {
		fmt.Fprintln(out, p.Location)
	}
	if p.OpenToWork {
		fmt.Fprintln(out, "Open to work")
	}
	if p.Bio != "" {
		fmt.Fprintf(out, "\n%s\n", p.Bio)
	}
	if p.ResumeURL != "" {
		fmt.Fprintf(out, "\nResume: %s\n", p.ResumeURL)
	}

	if len(p.Skills) > 0 {
		fmt.Fprintln(out, "\nSkills:")
		w := table("ID", "NAME", "LEVEL")
		for _, s := range p.Skills {
			row(w, s.ID, s.Name, s.Level)
		}
		_ = w.Flush()
	}
	if len(p.Experiences) > 0 {
		fmt.Fprintln(out, "\nExperience:")
		w := table("ID", "TITLE", "COMPANY", "FROM", "TO")
		for _, e := range p.Experiences {
			to := "now"
			if !e.IsCurrent && e.EndDate != nil {
				to = day(*e.EndDate)
			}
			row(w, e.ID, e.Title, e.Company, day(e.StartDate), to)
		}
		_ = w.Flush()
	}
	if len(p.Educations) > 0 {
		fmt.Fprintln(out, "\nEducation:")
		w := table("ID", "DEGREE", "INSTITUTION", "FROM", "TO")
		for _, e := range p.Educations {
			to := "now"
			if !e.IsCurrent && e.EndDate != nil {
				to = day(*e.EndDate)
			}
			row(w, e.ID, e.Degree, e.Institution, day(e.StartDate), to)
		}
		_ = w.Flush()
	}
}

// upload resume <path> | upload picture <path>
func runUpload(ctx context.Context, app *Container, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: upload resume|picture <path>")
	}
	editor := seekersrv.NewProfileEditor(app.Seeker, app.Confirmer, app.FileSystem)

	var (
		url kernel.FileURL
		err error
	)
	switch args[0] {
	case "resume":
		url, err = editor.UploadResume(ctx, args[1])
	case "picture":
		url, err = editor.UploadProfilePicture(ctx, args[1])
	default:
		return fmt.Errorf("unknown upload kind %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploaded: %s\n", url)
	return nil
}

// skill add|edit <id>|delete <id> [--name --level --years]
func runSkill(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("skill")
	name := fs.String("name", "", "skill name")
	level := fs.String("level", "", "BEGINNER, INTERMEDIATE, ADVANCED or EXPERT")
	years := fs.Int("years", 0, "years of experience")
	if err := fs.Parse(args); err != nil {
		return err
	}
	editor, err := loadEditor(ctx, app)
	if err != nil {
		return err
	}

	action, id := fs.Arg(0), kernel.SkillID(fs.Arg(1))
	switch action {
	case "delete":
		if err := editor.DeleteSkill(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Skill deleted.")
		return nil
	case "add":
		id = ""
	case "edit":
	default:
		return fmt.Errorf("usage: skill add|edit <id>|delete <id>")
	}

	form := editor.NewSkillForm(id)
	form.Edit(func(r *seeker.SkillRequest) {
		if fs.Changed("name") {
			r.Name = *name
		}
		if fs.Changed("level") {
			r.Level = seeker.SkillLevel(strings.ToUpper(*level))
		}
		if fs.Changed("years") {
			r.YearsOfExperience = years
		}
	})
	if err := saveForm(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(out, "Skill saved.")
	return nil
}

// experience add|edit <id>|delete <id>
func runExperience(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("experience")
	title := fs.String("title", "", "job title")
	company := fs.String("company", "", "company")
	location := fs.String("location", "", "location")
	start := fs.String("start", "", "start date")
	end := fs.String("end", "", "end date")
	current := fs.Bool("current", false, "current position")
	description := fs.String("description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	editor, err := loadEditor(ctx, app)
	if err != nil {
		return err
	}

	action, id := fs.Arg(0), kernel.ExperienceID(fs.Arg(1))
	switch action {
	case "delete":
		if err := editor.DeleteExperience(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Experience deleted.")
		return nil
	case "add":
		id = ""
	case "edit":
	default:
		return fmt.Errorf("usage: experience add|edit <id>|delete <id>")
	}

	startDate, err := parseDate(*start)
	if err != nil {
		return err
	}
	endDate, err := parseDate(*end)
	if err != nil {
		return err
	}

	form := editor.NewExperienceForm(id)
	form.Edit(func(r *seeker.ExperienceRequest) {
		if fs.Changed("title") {
			r.Title = *title
		}
		if fs.Changed("company") {
			r.Company = *company
		}
		if fs.Changed("location") {
			r.Location = *location
		}
		if startDate != nil {
			r.StartDate = startDate
		}
		if endDate != nil {
			r.EndDate = endDate
		}
		if fs.Changed("current") {
			r.IsCurrent = *current
		}
		if fs.Changed("description") {
			r.Description = *description
		}
	})
	if err := saveForm(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(out, "Experience saved.")
	return nil
}

// education add|edit <id>|delete <id>
func runEducation(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("education")
	institution := fs.String("institution", "", "school or university")
	degree := fs.String("degree", "", "degree")
	field := fs.String("field", "", "field of study")
	start := fs.String("start", "", "start date")
	end := fs.String("end", "", "end date")
	current := fs.Bool("current", false, "still studying")
	grade := fs.String("grade", "", "grade")
	if err := fs.Parse(args); err != nil {
		return err
	}
	editor, err := loadEditor(ctx, app)
	if err != nil {
		return err
	}

	action, id := fs.Arg(0), kernel.EducationID(fs.Arg(1))
	switch action {
	case "delete":
		if err := editor.DeleteEducation(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Education deleted.")
		return nil
	case "add":
		id = ""
	case "edit":
	default:
		return fmt.Errorf("usage: education add|edit <id>|delete <id>")
	}

	startDate, err := parseDate(*start)
	if err != nil {
		return err
	}
	endDate, err := parseDate(*end)
	if err != nil {
		return err
	}

	form := editor.NewEducationForm(id)
	form.Edit(func(r *seeker.EducationRequest) {
		if fs.Changed("institution") {
			r.Institution = *institution
		}
		if fs.Changed("degree") {
			r.Degree = *degree
		}
		if fs.Changed("field") {
			r.FieldOfStudy = *field
		}
		if startDate != nil {
			r.StartDate = startDate
		}
		if endDate != nil {
			r.EndDate = endDate
		}
		if fs.Changed("current") {
			r.IsCurrent = *current
		}
		if fs.Changed("grade") {
			r.Grade = *grade
		}
	})
	if err := saveForm(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(out, "Education saved.")
	return nil
}
