package auth

import (
	"slices"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Job board
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"
	ScopeJobsSave   = "jobs:save" // Bookmark jobs

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"  // Submit and withdraw
	ScopeApplicationsReview = "applications:review" // Change status, rate

	// Interview scopes
	ScopeInterviewsAll      = "interviews:*"
	ScopeInterviewsRead     = "interviews:read"
	ScopeInterviewsSchedule = "interviews:schedule"

	// Profile scopes
	ScopeProfileAll   = "profile:*"
	ScopeProfileRead  = "profile:read"
	ScopeProfileWrite = "profile:write"

	// Notification scopes
	ScopeNotificationsAll   = "notifications:*"
	ScopeNotificationsRead  = "notifications:read"
	ScopeNotificationsWrite = "notifications:write"

	// Company scopes
	ScopeTeamAll       = "team:*"
	ScopeTeamRead      = "team:read"
	ScopeTeamManage    = "team:manage"
	ScopeDashboardRead = "dashboard:read"

	// AI assist
	ScopeAIUse = "ai:use"
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
		ScopeJobsSave,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
	},
	"Interviews": {
		ScopeInterviewsAll,
		ScopeInterviewsRead,
		ScopeInterviewsSchedule,
	},
	"Profile": {
		ScopeProfileAll,
		ScopeProfileRead,
		ScopeProfileWrite,
	},
	"Notifications": {
		ScopeNotificationsAll,
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
	},
	"Company": {
		ScopeTeamAll,
		ScopeTeamRead,
		ScopeTeamManage,
		ScopeDashboardRead,
	},
	"Assist": {
		ScopeAIUse,
	},
}

// DomainScopeDescriptions provides descriptions for domain scopes
var DomainScopeDescriptions = map[string]string{
	ScopeAll: "Full access",

	// Jobs
	ScopeJobsAll:    "Full access to job postings",
	ScopeJobsRead:   "Browse and view jobs",
	ScopeJobsWrite:  "Create and edit job postings",
	ScopeJobsDelete: "Delete job postings",
	ScopeJobsSave:   "Save jobs for later",

	// Applications
	ScopeApplicationsAll:    "Full access to applications",
	ScopeApplicationsRead:   "View applications",
	ScopeApplicationsWrite:  "Apply to jobs and withdraw applications",
	ScopeApplicationsReview: "Review, move and rate applicants",

	// Interviews
	ScopeInterviewsAll:      "Full access to interviews",
	ScopeInterviewsRead:     "View interviews",
	ScopeInterviewsSchedule: "Schedule, reschedule and cancel interviews",

	// Profile
	ScopeProfileAll:   "Full access to the job seeker profile",
	ScopeProfileRead:  "View the job seeker profile",
	ScopeProfileWrite: "Edit the profile and upload files",

	// Notifications
	ScopeNotificationsAll:   "Full access to notifications",
	ScopeNotificationsRead:  "View notifications",
	ScopeNotificationsWrite: "Mark and delete notifications",

	// Company
	ScopeTeamAll:       "Full access to the company team",
	ScopeTeamRead:      "View team members",
	ScopeTeamManage:    "Invite, change and remove team members",
	ScopeDashboardRead: "View the employer dashboard",

	// Assist
	ScopeAIUse: "Use the AI assistant",
}

// RoleScopes lists what each account role may do
var RoleScopes = map[kernel.Role][]string{
	kernel.RoleJobSeeker: {
		ScopeJobsRead,
		ScopeJobsSave,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeInterviewsRead,
		ScopeProfileAll,
		ScopeNotificationsAll,
		ScopeAIUse,
	},
	kernel.RoleEmployer: {
		ScopeJobsAll,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeInterviewsAll,
		ScopeNotificationsAll,
		ScopeTeamAll,
		ScopeDashboardRead,
		ScopeAIUse,
	},
	kernel.RoleAdmin: {
		ScopeAll,
	},
}

// ScopesForRole returns a copy of the scopes granted to role
func ScopesForRole(role kernel.Role) []string {
	return slices.Clone(RoleScopes[role])
}

// HasScope checks required against granted, honoring "*" and "resource:*"
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, g := range granted {
		switch {
		case g == required, g == ScopeAll:
			return true
		case strings.HasSuffix(g, ":*") && strings.TrimSuffix(g, ":*") == resource:
			return true
		}
	}
	return false
}

// RoleCan checks whether role is granted required
func RoleCan(role kernel.Role, required string) bool {
	return HasScope(RoleScopes[role], required)
}
