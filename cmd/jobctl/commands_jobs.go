package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hireboard/recruitment/seeker/seekersrv"
	"github.com/spf13/pflag"
)

func init() {
	register("jobs", "browse the job feed", runJobs)
	register("job", "show one job and similar postings", runJob)
	register("recommended", "jobs picked for your profile", runRecommended)
	register("save", "bookmark a job", runSave)
	register("saved", "list or remove bookmarked jobs", runSaved)
	register("apply", "apply to a job", runApply)
	register("applications", "list your applications", runApplications)
	register("withdraw", "withdraw an application", runWithdraw)
}

// loadPages initializes c with q and loads up to pages pages
func loadPages[T listx.Item, F listx.Filters[F]](ctx context.Context, c *listx.Controller[T, F], q listx.Query[F], pages int) error {
	if err := c.Initialize(ctx, q); err != nil {
		return err
	}
	for i := 1; i < pages && c.Snapshot().CanLoadMore(); i++ {
		if err := c.LoadMore(ctx); err != nil {
			return err
		}
	}
	return nil
}

// loadUntil pages through c until id is loaded or the list is exhausted
func loadUntil[T listx.Item, F listx.Filters[F]](ctx context.Context, c *listx.Controller[T, F], q listx.Query[F], id string) error {
	if err := c.Initialize(ctx, q); err != nil {
		return err
	}
	for {
		s := c.Snapshot()
		if _, ok := s.Find(id); ok || !s.CanLoadMore() {
			return nil
		}
		if err := c.LoadMore(ctx); err != nil {
			return err
		}
	}
}

func pagesFlag(fs *pflag.FlagSet) *int {
	return fs.Int("pages", 1, "number of pages to load")
}

func runJobs(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("jobs")
	search := fs.StringP("search", "s", "", "free text search")
	location := fs.StringP("location", "l", "", "location")
	employment := fs.String("type", "", "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP or TEMPORARY")
	level := fs.String("level", "", "ENTRY, MID, SENIOR, LEAD or EXECUTIVE")
	remote := fs.Bool("remote", false, "remote jobs only")
	salaryMin := fs.Float64("salary-min", 0, "minimum salary")
	salaryMax := fs.Float64("salary-max", 0, "maximum salary")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := job.Filters{
		Search:          *search,
		Location:        *location,
		EmploymentType:  kernel.EmploymentType(strings.ToUpper(*employment)),
		ExperienceLevel: kernel.ExperienceLevel(strings.ToUpper(*level)),
	}
	if fs.Changed("remote") {
		filters.IsRemote = remote
	}
	if fs.Changed("salary-min") {
		filters.SalaryMin = salaryMin
	}
	if fs.Changed("salary-max") {
		filters.SalaryMax = salaryMax
	}

	feed := jobsrv.NewBrowser(app.Jobs, listx.WithPageSize[job.Job, job.Filters](app.Config.API.PageSize))
	if err := loadPages(ctx, feed.Feed, listx.Query[job.Filters]{Filters: filters}, *pages); err != nil {
		return err
	}
	s := feed.Snapshot()
	printJobs(s.Items)
	footer(s)
	return nil
}

func runJob(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("job")
	similar := fs.Int("similar", 3, "number of similar jobs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := needArg(fs, "job id")
	if err != nil {
		return err
	}

	detail, err := jobsrv.LoadDetail(ctx, app.Jobs, kernel.JobID(id), *similar)
	if err != nil {
		return err
	}
	printJob(detail.Job)
	if !detail.Open() {
		fmt.Fprintln(out, "\nThis job no longer accepts applications.")
	}
	if len(detail.Similar) > 0 {
		fmt.Fprintln(out, "\nSimilar jobs:")
		printJobs(detail.Similar)
	}
	return nil
}

func runRecommended(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("recommended")
	limit := fs.Int("limit", 10, "number of jobs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	jobs, err := app.Jobs.RecommendedJobs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No recommendations yet. Add skills to your profile.")
		return nil
	}
	printJobs(jobs)
	return nil
}

func runSave(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("save")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := needArg(fs, "job id")
	if err != nil {
		return err
	}
	if err := app.Jobs.SaveJob(ctx, kernel.JobID(id)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Saved.")
	return nil
}

// saved [--pages n] | saved remove <job id>
func runSaved(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("saved")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := seekersrv.NewSavedJobs(app.Seeker, listx.WithPageSize[job.Job, seekersrv.NoFilters](app.Config.API.PageSize))
	if fs.Arg(0) == "remove" {
		if fs.NArg() < 2 {
			return fmt.Errorf("missing job id")
		}
		id := fs.Arg(1)
		if err := loadUntil(ctx, list.SavedList, listx.Query[seekersrv.NoFilters]{}, id); err != nil {
			return err
		}
		if err := list.Unsave(ctx, kernel.JobID(id)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed. %d saved jobs left.\n", list.Snapshot().Pagination.Total)
		return nil
	}

	if err := loadPages(ctx, list.SavedList, listx.Query[seekersrv.NoFilters]{}, *pages); err != nil {
		return err
	}
	s := list.Snapshot()
	printJobs(s.Items)
	footer(s)
	return nil
}

func runApply(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("apply")
	cover := fs.StringP("cover-letter", "c", "", "cover letter text")
	resume := fs.String("resume-url", "", "resume to attach instead of the profile one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := needArg(fs, "job id")
	if err != nil {
		return err
	}

	form := applicationsrv.NewApplyForm(app.Applications, kernel.JobID(id), func(_ context.Context, a *application.Application) {
		fmt.Fprintf(out, "Applied to %s at %s (application %s).\n", a.JobTitle, a.CompanyName, a.ID)
	})
	form.Edit(func(r *application.SubmitApplicationRequest) {
		r.CoverLetter = *cover
		r.ResumeURL = kernel.FileURL(*resume)
	})
	return saveForm(ctx, form)
}

func runApplications(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("applications")
	status := fs.String("status", "", "only applications in this status")
	search := fs.StringP("search", "s", "", "search job titles")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tracker := applicationsrv.NewTracker(app.Applications, app.Confirmer,
		listx.WithPageSize[application.Application, application.Filters](app.Config.API.PageSize))
	q := listx.Query[application.Filters]{Filters: application.Filters{
		Status: application.ApplicationStatus(strings.ToUpper(*status)),
		Search: *search,
	}}
	if err := loadPages(ctx, tracker.List, q, *pages); err != nil {
		return err
	}
	s := tracker.Snapshot()
	printApplications(s.Items, false)
	footer(s)
	return nil
}

func runWithdraw(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("withdraw")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := needArg(fs, "application id")
	if err != nil {
		return err
	}

	tracker := applicationsrv.NewTracker(app.Applications, app.Confirmer)
	if err := loadUntil(ctx, tracker.List, listx.Query[application.Filters]{}, id); err != nil {
		return err
	}
	if err := tracker.Withdraw(ctx, kernel.ApplicationID(id)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Application withdrawn.")
	return nil
}
