package devserver

import (
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

func parseJobFilters(c *fiber.Ctx) job.Filters {
	return job.Filters{
		Search:          c.Query("search"),
		Location:        c.Query("location"),
		EmploymentType:  kernel.EmploymentType(c.Query("employment_type")),
		ExperienceLevel: kernel.ExperienceLevel(c.Query("experience_level")),
		SalaryMin:       queryFloat(c, "salary_min"),
		SalaryMax:       queryFloat(c, "salary_max"),
		IsRemote:        queryBool(c, "is_remote"),
	}
}

func viewerID(c *fiber.Ctx) kernel.UserID {
	user, _ := currentUser(c)
	return idOf(user)
}

// ListJobs retrieves open jobs with filters and pagination
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	page := h.store.ListJobs(viewerID(c), parseJobFilters(c), parsePaginationOptions(c))
	return reply(c, page)
}

// SearchJobs is ListJobs with the term in q
// GET /api/jobs/search?q=
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	f := parseJobFilters(c)
	f.Search = c.Query("q", f.Search)
	page := h.store.ListJobs(viewerID(c), f, parsePaginationOptions(c))
	return reply(c, page)
}

// RecommendedJobs ranks open jobs for the signed-in seeker
// GET /api/jobs/recommended
func (h *Handlers) RecommendedJobs(c *fiber.Ctx) error {
	return reply(c, h.store.RecommendedJobs(viewerID(c), c.QueryInt("limit", 0)))
}

// GetJob retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	j, err := h.store.GetJob(user, kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}
	return reply(c, j)
}

// SimilarJobs lists open jobs sharing skills with a job
// GET /api/jobs/:id/similar
func (h *Handlers) SimilarJobs(c *fiber.Ctx) error {
	jobs, err := h.store.SimilarJobs(viewerID(c), kernel.JobID(c.Params("id")), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return reply(c, jobs)
}

// SaveJob bookmarks a job
// POST /api/jobs/:id/save, POST /api/job-seeker/saved-jobs/:id
func (h *Handlers) SaveJob(c *fiber.Ctx) error {
	if err := h.store.SaveJob(viewerID(c), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Job saved")
}

// UnsaveJob removes a bookmark
// DELETE /api/jobs/:id/save, DELETE /api/job-seeker/saved-jobs/:id
func (h *Handlers) UnsaveJob(c *fiber.Ctx) error {
	if err := h.store.UnsaveJob(viewerID(c), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Job removed from saved")
}

// SavedJobs lists the seeker's bookmarks
// GET /api/job-seeker/saved-jobs
func (h *Handlers) SavedJobs(c *fiber.Ctx) error {
	return reply(c, h.store.SavedJobs(viewerID(c), parsePaginationOptions(c)))
}
