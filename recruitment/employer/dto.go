package employer

import (
	"net/url"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// PostingFilters narrows the employer's own job list
type PostingFilters struct {
	Status job.JobStatus `json:"status,omitempty"`
	Search string        `json:"search,omitempty"`
}

// Merge returns f with every field set in o overriding it
func (f PostingFilters) Merge(o PostingFilters) PostingFilters {
	f.Status = listx.Pick(f.Status, o.Status)
	f.Search = listx.Pick(f.Search, o.Search)
	return f
}

// Encode writes the set filters as query parameters
func (f PostingFilters) Encode(v url.Values) {
	listx.SetString(v, "status", string(f.Status))
	listx.SetString(v, "search", f.Search)
}

// InviteMemberRequest - DTO for inviting someone to the company team
type InviteMemberRequest struct {
	Email kernel.Email `json:"email" validate:"required,email"`
	Role  TeamRole     `json:"role" validate:"required,oneof=ADMIN RECRUITER VIEWER"`
}

// UpdateRoleRequest - DTO for changing a member's role
type UpdateRoleRequest struct {
	Role TeamRole `json:"role" validate:"required,oneof=ADMIN RECRUITER VIEWER"`
}
