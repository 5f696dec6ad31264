package devserver

import (
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/gofiber/fiber/v2"
)

func parseApplicationFilters(c *fiber.Ctx) application.Filters {
	return application.Filters{
		Status: application.ApplicationStatus(c.Query("status")),
		Search: c.Query("search"),
	}
}

func parseInterviewFilters(c *fiber.Ctx) interview.Filters {
	return interview.Filters{
		Status:   interview.InterviewStatus(c.Query("status")),
		Upcoming: queryBool(c, "upcoming"),
	}
}

// ============================================================================
// Applications
// ============================================================================

// SubmitApplication applies the signed-in seeker to a job
// POST /api/applications
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[application.SubmitApplicationRequest](c)
	if err != nil {
		return err
	}

	app, err := h.store.Submit(user, req)
	if err != nil {
		return err
	}
	return replyCreated(c, app)
}

// MyApplications lists the seeker's applications
// GET /api/applications/my
func (h *Handlers) MyApplications(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	return reply(c, h.store.ListMyApplications(user.ID, parseApplicationFilters(c), parsePaginationOptions(c)))
}

// GetApplication retrieves an application by ID
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	app, err := h.store.GetApplication(user, kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return reply(c, app)
}

// WithdrawApplication withdraws the seeker's application
// POST /api/applications/:id/withdraw
func (h *Handlers) WithdrawApplication(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	app, err := h.store.Withdraw(user, kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return reply(c, app)
}

// JobApplications lists applicants of one of the employer's jobs
// GET /api/employer/jobs/:id/applications
func (h *Handlers) JobApplications(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	page, err := h.store.JobApplications(user, kernel.JobID(c.Params("id")), parseApplicationFilters(c), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return reply(c, page)
}

// UpdateApplicationStatus moves an application along the pipeline
// PATCH /api/employer/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[application.UpdateStatusRequest](c)
	if err != nil {
		return err
	}
	app, err := h.store.UpdateApplicationStatus(user, kernel.ApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, app)
}

// RateApplication stores the employer's rating of an applicant
// POST /api/employer/applications/:id/rate
func (h *Handlers) RateApplication(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[application.RateApplicationRequest](c)
	if err != nil {
		return err
	}
	app, err := h.store.RateApplication(user, kernel.ApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, app)
}

// ============================================================================
// Interviews
// ============================================================================

// ListInterviews lists the seeker's or the company's interviews
// GET /api/interviews/my, GET /api/employer/interviews
func (h *Handlers) ListInterviews(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	return reply(c, h.store.ListInterviews(user, parseInterviewFilters(c), parsePaginationOptions(c)))
}

// GetInterview retrieves an interview by ID
// GET /api/interviews/:id
func (h *Handlers) GetInterview(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	iv, err := h.store.GetInterview(user, kernel.InterviewID(c.Params("id")))
	if err != nil {
		return err
	}
	return reply(c, iv)
}

// ScheduleInterview books an interview for a shortlisted application
// POST /api/interviews
func (h *Handlers) ScheduleInterview(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[interview.ScheduleInterviewRequest](c)
	if err != nil {
		return err
	}
	iv, err := h.store.ScheduleInterview(user, req)
	if err != nil {
		return err
	}
	return replyCreated(c, iv)
}

// UpdateInterview reschedules or edits an interview
// PUT /api/interviews/:id
func (h *Handlers) UpdateInterview(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[interview.UpdateInterviewRequest](c)
	if err != nil {
		return err
	}
	iv, err := h.store.UpdateInterview(user, kernel.InterviewID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, iv)
}

// CancelInterview calls an interview off, from either side
// POST /api/interviews/:id/cancel
func (h *Handlers) CancelInterview(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[interview.CancelInterviewRequest](c)
	if err != nil {
		return err
	}
	iv, err := h.store.CancelInterview(user, kernel.InterviewID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, iv)
}
