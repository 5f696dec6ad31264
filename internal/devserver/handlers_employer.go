package devserver

import (
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/employer/employersrv"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

// CreateJob creates a new job posting
// POST /api/employer/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind(c, employersrv.PostingRules...)
	if err != nil {
		return err
	}

	newJob, err := h.store.CreateJob(user, req)
	if err != nil {
		return err
	}
	return replyCreated(c, newJob)
}

// UpdateJob updates an existing job posting
// PUT /api/employer/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[job.UpdateJobRequest](c)
	if err != nil {
		return err
	}

	updated, err := h.store.UpdateJob(user, kernel.JobID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, updated)
}

// DeleteJob deletes a job posting with its applications
// DELETE /api/employer/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteJob(user, kernel.JobID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Job deleted")
}

// MyJobs lists the company's postings
// GET /api/employer/jobs
func (h *Handlers) MyJobs(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	filters := employer.PostingFilters{
		Status: job.JobStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	return reply(c, h.store.MyJobs(user, filters, parsePaginationOptions(c)))
}

// ============================================================================
// Team
// ============================================================================

// ListTeam - GET /api/employer/team
func (h *Handlers) ListTeam(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	members, err := h.store.Team(user)
	if err != nil {
		return err
	}
	return reply(c, members)
}

// InviteMember - POST /api/employer/team/invite
func (h *Handlers) InviteMember(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[employer.InviteMemberRequest](c)
	if err != nil {
		return err
	}
	m, err := h.store.InviteMember(user, req)
	if err != nil {
		return err
	}
	return replyCreated(c, m)
}

// UpdateMemberRole - PATCH /api/employer/team/:id/role
func (h *Handlers) UpdateMemberRole(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[employer.UpdateRoleRequest](c)
	if err != nil {
		return err
	}
	m, err := h.store.UpdateMemberRole(user, kernel.TeamMemberID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, m)
}

// RemoveMember - DELETE /api/employer/team/:id
func (h *Handlers) RemoveMember(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	if err := h.store.RemoveMember(user, kernel.TeamMemberID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Member removed")
}

// Dashboard - GET /api/employer/dashboard
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	d, err := h.store.Dashboard(user)
	if err != nil {
		return err
	}
	return reply(c, d)
}
