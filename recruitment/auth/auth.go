package auth

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// User is the signed-in account as returned by the backend
type User struct {
	ID          kernel.UserID      `json:"id"`
	Email       kernel.Email       `json:"email"`
	Role        kernel.Role        `json:"role"`
	FirstName   kernel.FirstName   `json:"first_name"`
	LastName    kernel.LastName    `json:"last_name"`
	CompanyID   *kernel.CompanyID  `json:"company_id,omitempty"`
	CompanyName kernel.CompanyName `json:"company_name,omitempty"`
	Profile     json.RawMessage    `json:"profile,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Session is the credential pair held by the session store
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsEmployer checks if the user posts jobs
func (u *User) IsEmployer() bool {
	return u.Role == kernel.RoleEmployer
}

// IsJobSeeker checks if the user applies to jobs
func (u *User) IsJobSeeker() bool {
	return u.Role == kernel.RoleJobSeeker
}

// IsAdmin checks if the user administers the platform
func (u *User) IsAdmin() bool {
	return u.Role == kernel.RoleAdmin
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(string(u.FirstName) + " " + string(u.LastName))
}

// IsAuthenticated checks if the session carries a token and a user
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the role of the signed-in user, or "" when signed out
func (s Session) Role() kernel.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
