package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/employer/employersrv"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

func init() {
	register("postings", "list, close, toggle or delete your job postings", runPostings)
	register("post", "create or edit a job posting", runPost)
	register("applicants", "review the applicants of a job", runApplicants)
	register("schedule", "schedule an interview with a shortlisted applicant", runSchedule)
	register("team", "list, invite, change or remove team members", runTeam)
	register("dashboard", "company hiring numbers", runDashboard)
}

func newPostings(app *Container) *employersrv.Postings {
	return employersrv.NewPostings(app.Employer, app.Confirmer,
		listx.WithPageSize[job.Job, employer.PostingFilters](app.Config.API.PageSize))
}

// postings [--status S] | postings delete|toggle <id> | postings status <id> <STATUS>
func runPostings(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("postings")
	status := fs.String("status", "", "DRAFT, PUBLISHED, CLOSED or ARCHIVED")
	search := fs.StringP("search", "s", "", "search titles")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	postings := newPostings(app)
	q := listx.Query[employer.PostingFilters]{Filters: employer.PostingFilters{
		Status: job.JobStatus(strings.ToUpper(*status)),
		Search: *search,
	}}

	action, id := fs.Arg(0), kernel.JobID(fs.Arg(1))
	if action != "" {
		if err := loadUntil(ctx, postings.PostingList, q, id.String()); err != nil {
			return err
		}
	}
	switch action {
	case "":
	case "delete":
		if err := postings.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Posting deleted.")
		return nil
	case "toggle":
		if err := postings.ToggleActive(ctx, id); err != nil {
			return err
		}
		j, _ := postings.Snapshot().Find(id.String())
		fmt.Fprintf(out, "Posting is now %s.\n", map[bool]string{true: "active", false: "paused"}[j.IsActive])
		return nil
	case "status":
		if err := postings.SetStatus(ctx, id, job.JobStatus(strings.ToUpper(fs.Arg(2)))); err != nil {
			return err
		}
		fmt.Fprintln(out, "Status updated.")
		return nil
	default:
		return fmt.Errorf("unknown postings action %q", action)
	}

	if err := loadPages(ctx, postings.PostingList, q, *pages); err != nil {
		return err
	}
	s := postings.Snapshot()
	w := table("ID", "TITLE", "STATUS", "ACTIVE", "APPLICANTS", "POSTED")
	for _, j := range s.Items {
		row(w, j.ID, j.Title, j.Status, check(j.IsActive), j.ApplicationCount, day(j.CreatedAt))
	}
	_ = w.Flush()
	footer(s)
	return nil
}

// post [--edit <id>] --title ... creates a posting or edits an existing one
func runPost(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("post")
	edit := fs.String("edit", "", "id of the posting to edit")
	title := fs.String("title", "", "job title")
	description := fs.String("description", "", "description")
	location := fs.String("location", "", "location")
	employment := fs.String("type", "", "employment type")
	level := fs.String("level", "", "experience level")
	salaryMin := fs.Float64("salary-min", 0, "minimum salary")
	salaryMax := fs.Float64("salary-max", 0, "maximum salary")
	currency := fs.String("currency", "", "ISO currency code")
	remote := fs.Bool("remote", false, "remote friendly")
	requirements := fs.StringSlice("requirement", nil, "requirement, repeatable")
	benefits := fs.StringSlice("benefit", nil, "benefit, repeatable")
	skills := fs.StringSlice("skill", nil, "skill, repeatable")
	deadline := fs.String("deadline", "", "application deadline")
	if err := fs.Parse(args); err != nil {
		return err
	}

	postings := newPostings(app)
	var existing *job.Job
	if *edit != "" {
		if err := loadUntil(ctx, postings.PostingList, listx.Query[employer.PostingFilters]{}, *edit); err != nil {
			return err
		}
		j, ok := postings.Snapshot().Find(*edit)
		if !ok {
			return job.ErrJobNotFound().WithDetail("job_id", *edit)
		}
		existing = &j
	}
	due, err := parseDate(*deadline)
	if err != nil {
		return err
	}

	form := postings.NewPostingForm(existing)
	form.Edit(func(r *job.CreateJobRequest) {
		if fs.Changed("title") {
			r.Title = kernel.JobTitle(*title)
		}
		if fs.Changed("description") {
			r.Description = kernel.JobDescription(*description)
		}
		if fs.Changed("location") {
			r.Location = *location
		}
		if fs.Changed("type") {
			r.EmploymentType = kernel.EmploymentType(strings.ToUpper(*employment))
		}
		if fs.Changed("level") {
			r.ExperienceLevel = kernel.ExperienceLevel(strings.ToUpper(*level))
		}
		if fs.Changed("salary-min") {
			r.SalaryMin = salaryMin
		}
		if fs.Changed("salary-max") {
			r.SalaryMax = salaryMax
		}
		if fs.Changed("currency") {
			r.Currency = strings.ToUpper(*currency)
		}
		if fs.Changed("remote") {
			r.IsRemote = *remote
		}
		if fs.Changed("requirement") {
			r.Requirements = typed[kernel.JobRequirement](*requirements)
		}
		if fs.Changed("benefit") {
			r.Benefits = typed[kernel.JobBenefit](*benefits)
		}
		if fs.Changed("skill") {
			r.Skills = *skills
		}
		if due != nil {
			r.Deadline = due
		}
	})
	if err := saveForm(ctx, form); err != nil {
		return err
	}
	if existing != nil {
		fmt.Fprintln(out, "Posting updated.")
	} else {
		fmt.Fprintln(out, "Posting created.")
	}
	return nil
}

func typed[S ~string](in []string) []S {
	res := make([]S, len(in))
	for i, s := range in {
		res[i] = S(s)
	}
	return res
}

// applicants <job id> [--status S]
// applicants <job id> status <application id> <STATUS> [--notes]
// applicants <job id> rate <application id> <1-5> [--notes]
func runApplicants(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("applicants")
	status := fs.String("status", "", "only applicants in this status")
	notes := fs.String("notes", "", "notes kept with a status change or rating")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	jobID, err := needArg(fs, "job id")
	if err != nil {
		return err
	}

	review := employersrv.NewReview(app.Employer, kernel.JobID(jobID),
		listx.WithPageSize[application.Application, application.Filters](app.Config.API.PageSize))
	q := listx.Query[application.Filters]{Filters: application.Filters{
		Status: application.ApplicationStatus(strings.ToUpper(*status)),
	}}

	action, id := fs.Arg(1), kernel.ApplicationID(fs.Arg(2))
	switch action {
	case "":
	case "status":
		if err := loadUntil(ctx, review.ApplicantList, q, id.String()); err != nil {
			return err
		}
		next := application.ApplicationStatus(strings.ToUpper(fs.Arg(3)))
		if err := review.UpdateStatus(ctx, id, next, *notes); err != nil {
			return err
		}
		fmt.Fprintf(out, "Application moved to %s.\n", next)
		return nil
	case "rate":
		if err := loadUntil(ctx, review.ApplicantList, q, id.String()); err != nil {
			return err
		}
		var rating int
		if _, err := fmt.Sscan(fs.Arg(3), &rating); err != nil {
			return fmt.Errorf("rating must be a number from 1 to 5")
		}
		if err := review.Rate(ctx, id, rating, *notes); err != nil {
			return err
		}
		fmt.Fprintln(out, "Rating saved.")
		return nil
	default:
		return fmt.Errorf("unknown applicants action %q", action)
	}

	if err := loadPages(ctx, review.ApplicantList, q, *pages); err != nil {
		return err
	}
	s := review.Snapshot()
	printApplications(s.Items, true)
	footer(s)
	return nil
}

// schedule <job id> <application id> --at 2026-01-02T15:04 ...
func runSchedule(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("schedule")
	at := fs.String("at", "", "start time, YYYY-MM-DDTHH:MM in local time")
	duration := fs.Int("duration", 60, "minutes")
	typ := fs.String("type", string(interview.InterviewTypeVideo), "VIDEO, PHONE or ONSITE")
	location := fs.String("location", "", "address for onsite interviews")
	meeting := fs.String("meeting-url", "", "link for video interviews")
	notes := fs.String("notes", "", "notes for the candidate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: schedule <job id> <application id> --at YYYY-MM-DDTHH:MM")
	}
	when, err := time.ParseInLocation("2006-01-02T15:04", *at, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --at %q, use YYYY-MM-DDTHH:MM", *at)
	}

	review := employersrv.NewReview(app.Employer, kernel.JobID(fs.Arg(0)))
	id := kernel.ApplicationID(fs.Arg(1))
	if err := loadUntil(ctx, review.ApplicantList, listx.Query[application.Filters]{}, id.String()); err != nil {
		return err
	}
	form, err := review.NewInterviewForm(id)
	if err != nil {
		return err
	}
	form.Edit(func(r *interview.ScheduleInterviewRequest) {
		r.ScheduledAt = when.UTC()
		r.DurationMinutes = *duration
		r.Type = interview.InterviewType(strings.ToUpper(*typ))
		r.Location = *location
		r.MeetingURL = *meeting
		r.Notes = *notes
	})
	if err := saveForm(ctx, form); err != nil {
		return err
	}
	fmt.Fprintf(out, "Interview scheduled for %s.\n", when.Format("Mon Jan 2 15:04"))
	return nil
}

// team | team invite --email E [--role R] | team role <id> <ROLE> | team remove <id>
func runTeam(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("team")
	email := fs.String("email", "", "email to invite")
	role := fs.String("role", "", "ADMIN, RECRUITER or VIEWER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	team := employersrv.NewTeam(app.Employer, app.Confirmer)
	if err := team.Load(ctx); err != nil {
		return err
	}

	switch fs.Arg(0) {
	case "":
	case "invite":
		form := team.NewInviteForm()
		form.Edit(func(r *employer.InviteMemberRequest) {
			r.Email = kernel.Email(*email)
			if *role != "" {
				r.Role = employer.TeamRole(strings.ToUpper(*role))
			}
		})
		if err := saveForm(ctx, form); err != nil {
			return err
		}
		fmt.Fprintf(out, "Invitation sent to %s.\n", *email)
	case "role":
		next := employer.TeamRole(strings.ToUpper(fs.Arg(2)))
		if err := team.UpdateRole(ctx, kernel.TeamMemberID(fs.Arg(1)), next); err != nil {
			return err
		}
		fmt.Fprintln(out, "Role updated.")
	case "remove":
		if err := team.Remove(ctx, kernel.TeamMemberID(fs.Arg(1))); err != nil {
			return err
		}
		fmt.Fprintln(out, "Member removed.")
	default:
		return fmt.Errorf("unknown team action %q", fs.Arg(0))
	}

	w := table("ID", "NAME", "EMAIL", "ROLE", "STATUS")
	for _, m := range team.Members() {
		row(w, m.ID, m.DisplayName(), m.Email, m.Role, m.Status)
	}
	return w.Flush()
}

func runDashboard(ctx context.Context, app *Container, _ []string) error {
	view := employersrv.NewDashboardView(app.Employer)
	if err := view.Load(ctx); err != nil {
		return err
	}
	d, _ := view.Data()

	w := table("METRIC", "VALUE")
	row(w, "Jobs", fmt.Sprintf("%d (%d active)", d.TotalJobs, d.ActiveJobs))
	row(w, "Applications", fmt.Sprintf("%d (%d new)", d.TotalApplications, d.NewApplications))
	row(w, "Interviews scheduled", d.InterviewsScheduled)
	row(w, "Hires", d.Hires)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(d.ApplicationsByStatus) > 0 {
		fmt.Fprintln(out, "\nApplications by status:")
		statuses := make([]string, 0, len(d.ApplicationsByStatus))
		for s := range d.ApplicationsByStatus {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		w := table("STATUS", "COUNT")
		for _, s := range statuses {
			row(w, s, d.ApplicationsByStatus[application.ApplicationStatus(s)])
		}
		_ = w.Flush()
	}
	if len(d.RecentApplications) > 0 {
		fmt.Fprintln(out, "\nRecent applications:")
		printApplications(d.RecentApplications, true)
	}
	fmt.Fprintf(out, "\nAs of %s\n", view.LoadedAt().Format("15:04:05"))
	return nil
}
