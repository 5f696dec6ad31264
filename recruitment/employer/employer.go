package employer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
)

// TeamRole is the permission level of a company team member
type TeamRole string

const (
	TeamRoleOwner     TeamRole = "OWNER"
	TeamRoleAdmin     TeamRole = "ADMIN"
	TeamRoleRecruiter TeamRole = "RECRUITER"
	TeamRoleViewer    TeamRole = "VIEWER"
)

// IsValid reports whether r is a known team role
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleRecruiter, TeamRoleViewer:
		return true
	default:
		return false
	}
}

// MemberStatus tells invited members apart from those who joined
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "INVITED"
	MemberStatusActive  MemberStatus = "ACTIVE"
)

// TeamMember of the employer's company
type TeamMember struct {
	ID        kernel.TeamMemberID `json:"id"`
	UserID    kernel.UserID       `json:"user_id,omitempty"`
	Email     kernel.Email        `json:"email"`
	FirstName kernel.FirstName    `json:"first_name,omitempty"`
	LastName  kernel.LastName     `json:"last_name,omitempty"`
	Role      TeamRole            `json:"role"`
	Status    MemberStatus        `json:"status"`
	InvitedAt time.Time           `json:"invited_at"`
	JoinedAt  *time.Time          `json:"joined_at,omitempty"`
}

// ItemID identifies the member inside list controllers
func (m TeamMember) ItemID() string {
	return m.ID.String()
}

// ===== Domain Methods =====

// DisplayName returns the member's name, or the email while invited
func (m *TeamMember) DisplayName() string {
	name := strings.TrimSpace(fmt.Sprintf("%s %s", m.FirstName, m.LastName))
	if name == "" {
		return string(m.Email)
	}
	return name
}

// IsOwner reports whether the member owns the company account
func (m *TeamMember) IsOwner() bool {
	return m.Role == TeamRoleOwner
}

// CanBeRemoved reports whether the member may be removed from the team
func (m *TeamMember) CanBeRemoved() bool {
	return !m.IsOwner()
}

// Dashboard holds the employer's aggregate numbers. They come from their own
// endpoint and are never derived from list contents.
type Dashboard struct {
	TotalJobs            int                                   `json:"total_jobs"`
	ActiveJobs           int                                   `json:"active_jobs"`
	TotalApplications    int                                   `json:"total_applications"`
	NewApplications      int                                   `json:"new_applications"`
	InterviewsScheduled  int                                   `json:"interviews_scheduled"`
	Hires                int                                   `json:"hires"`
	ApplicationsByStatus map[application.ApplicationStatus]int `json:"applications_by_status,omitempty"`
	RecentApplications   []application.Application             `json:"recent_applications,omitempty"`
}
