package job

import (
	"fmt"
	"net/url"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
)

// Filters narrows the job feed. Zero fields are not applied.
type Filters struct {
	Search          string                 `json:"search,omitempty"`
	Location        string                 `json:"location,omitempty"`
	EmploymentType  kernel.EmploymentType  `json:"employment_type,omitempty"`
	ExperienceLevel kernel.ExperienceLevel `json:"experience_level,omitempty"`
	SalaryMin       *float64               `json:"salary_min,omitempty"`
	SalaryMax       *float64               `json:"salary_max,omitempty"`
	IsRemote        *bool                  `json:"is_remote,omitempty"`
}

// Merge returns f with every field set in o overriding it
func (f Filters) Merge(o Filters) Filters {
	f.Search = listx.Pick(f.Search, o.Search)
	f.Location = listx.Pick(f.Location, o.Location)
	f.EmploymentType = listx.Pick(f.EmploymentType, o.EmploymentType)
	f.ExperienceLevel = listx.Pick(f.ExperienceLevel, o.ExperienceLevel)
	f.SalaryMin = listx.PickPtr(f.SalaryMin, o.SalaryMin)
	f.SalaryMax = listx.PickPtr(f.SalaryMax, o.SalaryMax)
	f.IsRemote = listx.PickPtr(f.IsRemote, o.IsRemote)
	return f
}

// Encode writes the set filters as query parameters
func (f Filters) Encode(v url.Values) {
	listx.SetString(v, "search", f.Search)
	listx.SetString(v, "location", f.Location)
	listx.SetString(v, "employment_type", string(f.EmploymentType))
	listx.SetString(v, "experience_level", string(f.ExperienceLevel))
	listx.SetFloat(v, "salary_min", f.SalaryMin)
	listx.SetFloat(v, "salary_max", f.SalaryMax)
	listx.SetBool(v, "is_remote", f.IsRemote)
}

// Active lists the applied filters as display labels, search excluded
func (f Filters) Active() []string {
	var out []string
	if f.Location != "" {
		out = append(out, f.Location)
	}
	if f.EmploymentType != "" {
		out = append(out, f.EmploymentType.GetDisplayName())
	}
	if f.ExperienceLevel != "" {
		out = append(out, f.ExperienceLevel.GetDisplayName())
	}
	if f.SalaryMin != nil {
		out = append(out, fmt.Sprintf("min %.0f", *f.SalaryMin))
	}
	if f.SalaryMax != nil {
		out = append(out, fmt.Sprintf("max %.0f", *f.SalaryMax))
	}
	if f.IsRemote != nil {
		if *f.IsRemote {
			out = append(out, "Remote")
		} else {
			out = append(out, "On-site")
		}
	}
	return out
}

// IsEmpty reports whether no filter and no search is set
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}
