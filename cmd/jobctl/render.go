package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
)

func table(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func row(w *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

// footer prints the paging line under a list screen
func footer[T listx.Item, F listx.Filters[F]](s listx.State[T, F]) {
	if len(s.Items) == 0 {
		fmt.Fprintln(out, "Nothing to show.")
		return
	}
	more := ""
	if s.CanLoadMore() {
		more = " (more available, use --pages)"
	}
	fmt.Fprintf(out, "\nShowing %d of %d, page %d/%d%s\n", len(s.Items), s.Pagination.Total, s.Pagination.Number, max(s.Pagination.Pages, 1), more)
}

func salary(lo, hi *float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("%s %.0f-%.0f", currency, *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("%s %.0f+", currency, *lo)
	case hi != nil:
		return fmt.Sprintf("up to %s %.0f", currency, *hi)
	}
	return "-"
}

func check(b bool) string {
	if b {
		return "x"
	}
	return ""
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func printJobs(jobs []job.Job) {
	w := table("ID", "TITLE", "COMPANY", "LOCATION", "TYPE", "SALARY", "SAVED", "APPLIED")
	for _, j := range jobs {
		location := j.Location
		if j.IsRemote {
			location += " (remote)"
		}
		row(w, j.ID, j.Title, j.CompanyName, location, j.EmploymentType.GetDisplayName(),
			salary(j.SalaryMin, j.SalaryMax, j.Currency), check(j.IsSaved), check(j.HasApplied))
	}
	_ = w.Flush()
}

func printJob(j *job.Job) {
	fmt.Fprintf(out, "%s at %s\n", j.Title, j.CompanyName)
	fmt.Fprintf(out, "%s · %s · %s · %s\n", j.Location, j.EmploymentType.GetDisplayName(), j.ExperienceLevel.GetDisplayName(), salary(j.SalaryMin, j.SalaryMax, j.Currency))
	if j.IsRemote {
		fmt.Fprintln(out, "Remote friendly")
	}
	fmt.Fprintf(out, "\n%s\n", j.Description)
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(out, "  - %s\n", it)
		}
	}
	list("Requirements", strs(j.Requirements))
	list("Benefits", strs(j.Benefits))
	list("Skills", j.Skills)
	if j.Deadline != nil {
		fmt.Fprintf(out, "\nApply before %s\n", day(*j.Deadline))
	}
	if j.HasApplied {
		fmt.Fprintln(out, "\nYou already applied.")
	}
}

func printApplications(apps []application.Application, employerView bool) {
	if employerView {
		w := table("ID", "APPLICANT", "EMAIL", "STATUS", "RATING", "APPLIED")
		for _, a := range apps {
			rating := "-"
			if a.Rating != nil {
				rating = fmt.Sprintf("%d/5", *a.Rating)
			}
			row(w, a.ID, a.ApplicantName, a.ApplicantEmail, a.Status, rating, day(a.CreatedAt))
		}
		_ = w.Flush()
		return
	}
	w := table("ID", "JOB", "COMPANY", "STATUS", "APPLIED")
	for _, a := range apps {
		row(w, a.ID, a.JobTitle, a.CompanyName, a.Status, day(a.CreatedAt))
	}
	_ = w.Flush()
}

func printInterviews(ivs []interview.Interview) {
	w := table("ID", "WHEN", "MIN", "TYPE", "JOB", "CANDIDATE", "STATUS")
	for _, iv := range ivs {
		row(w, iv.ID, iv.ScheduledAt.Local().Format("2006-01-02 15:04"), iv.DurationMinutes, iv.Type, iv.JobTitle, iv.CandidateName, iv.Status)
	}
	_ = w.Flush()
}

func printNotifications(ns []notification.Notification) {
	w := table("ID", "", "TYPE", "TITLE", "DATE")
	for _, n := range ns {
		unread := ""
		if !n.IsRead {
			unread = "*"
		}
		row(w, n.ID, unread, n.Type, n.Title, day(n.CreatedAt))
	}
	_ = w.Flush()
}

func strs[S ~string](in []S) []string {
	res := make([]string, len(in))
	for i, s := range in {
		res[i] = string(s)
	}
	return res
}
