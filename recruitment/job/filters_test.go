package job_test

import (
	"net/url"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

func TestFiltersMerge(t *testing.T) {
	lo := 1000.0
	remote := false
	base := job.Filters{Search: "go", Location: "Lima", SalaryMin: &lo}
	got := base.Merge(job.Filters{Location: "Quito", IsRemote: &remote})

	if got.Search != "go" || got.Location != "Quito" || got.SalaryMin != &lo || got.IsRemote != &remote {
		t.Errorf("Merge = %+v", got)
	}
}

func TestFiltersEncode(t *testing.T) {
	lo, hi := 1500.0, 3000.5
	remote := true
	f := job.Filters{
		Search:          "backend",
		EmploymentType:  kernel.EmploymentFullTime,
		ExperienceLevel: kernel.ExperienceSenior,
		SalaryMin:       &lo,
		SalaryMax:       &hi,
		IsRemote:        &remote,
	}
	v := url.Values{}
	f.Encode(v)

	want := url.Values{
		"search":           {"backend"},
		"employment_type":  {"FULL_TIME"},
		"experience_level": {"SENIOR"},
		"salary_min":       {"1500"},
		"salary_max":       {"3000.5"},
		"is_remote":        {"true"},
	}
	if v.Encode() != want.Encode() {
		t.Errorf("Encode = %s, want %s", v.Encode(), want.Encode())
	}
	if got := len(f.Active()); got != 5 {
		t.Errorf("Active() = %v", f.Active())
	}
	if f.IsEmpty() || !(job.Filters{}).IsEmpty() {
		t.Error("IsEmpty wrong")
	}
}
