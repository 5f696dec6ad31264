package devserver

import (
	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/assist"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
	"github.com/gofiber/fiber/v2"
)

func jobDoc(j *job.Job) ai.JobDoc {
	return ai.JobDoc{
		ID:          j.ID.String(),
		Title:       string(j.Title),
		Company:     string(j.CompanyName),
		Description: string(j.Description),
		Level:       j.ExperienceLevel.GetDisplayName(),
		Skills:      j.Skills,
	}
}

func candidate(p *seeker.Profile) ai.Candidate {
	c := ai.Candidate{
		Name:     string(p.FirstName) + " " + string(p.LastName),
		Headline: p.Headline,
		Summary:  p.Bio,
	}
	for _, s := range p.Skills {
		c.Skills = append(c.Skills, s.Name)
	}
	return c
}

// optionalJob resolves id when set
func (h *Handlers) optionalJob(user *auth.User, id kernel.JobID) (*ai.JobDoc, error) {
	if id.IsEmpty() {
		return nil, nil
	}
	j, err := h.store.GetJob(user, id)
	if err != nil {
		return nil, err
	}
	doc := jobDoc(j)
	return &doc, nil
}

// engineFailed hides engine errors behind the assistant's unavailable error
func engineFailed(err error) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	logx.Warnf("assist engine failed: %v", err)
	return assist.ErrUnavailable().WithCause(err)
}

// JobMatches ranks open jobs for the seeker's profile
// POST /api/ai/job-matches
func (h *Handlers) JobMatches(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[assist.JobMatchesRequest](c)
	if err != nil {
		return err
	}
	profile, err := h.store.Profile(user.ID)
	if err != nil {
		return err
	}

	open := h.store.OpenJobs(user.ID)
	docs := make([]ai.JobDoc, len(open))
	for i := range open {
		docs[i] = jobDoc(&open[i])
	}

	matches, err := h.engine.MatchJobs(c.UserContext(), candidate(profile), docs, req.Limit)
	if err != nil {
		return engineFailed(err)
	}
	return reply(c, fiber.Map{"matches": matches})
}

// AnalyzeResume reviews the given resume, or the uploaded one
// POST /api/ai/analyze-resume
func (h *Handlers) AnalyzeResume(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[assist.AnalyzeResumeRequest](c)
	if err != nil {
		return err
	}

	url := req.ResumeURL
	if url == "" {
		if p, err := h.store.Profile(user.ID); err == nil {
			url = p.ResumeURL
		}
	}
	if url == "" {
		return assist.ErrNoResume()
	}
	if req.JobID.IsEmpty() {
		if cached, ok := h.store.Analysis(url); ok {
			return reply(c, cached)
		}
	}
	f, ok := h.store.FileByURL(url)
	if !ok {
		return ErrFileNotFound().WithDetail("resume_url", url)
	}

	target, err := h.optionalJob(user, req.JobID)
	if err != nil {
		return err
	}

	analysis, err := h.engine.AnalyzeResume(c.UserContext(), ai.Document{
		Name:        f.Name,
		ContentType: f.ContentType,
		Data:        f.Data,
	}, target)
	if err != nil {
		return engineFailed(err)
	}
	return reply(c, analysis)
}

// InterviewQuestions generates practice questions for a job
// POST /api/ai/interview-questions
func (h *Handlers) InterviewQuestions(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[assist.InterviewQuestionsRequest](c)
	if err != nil {
		return err
	}
	target, err := h.optionalJob(user, req.JobID)
	if err != nil {
		return err
	}

	questions, err := h.engine.InterviewQuestions(c.UserContext(), *target, req.Count)
	if err != nil {
		return engineFailed(err)
	}
	return reply(c, fiber.Map{"questions": questions})
}

// EvaluateAnswer grades a practice answer
// POST /api/ai/evaluate-answer
func (h *Handlers) EvaluateAnswer(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	req, err := bind[assist.EvaluateAnswerRequest](c)
	if err != nil {
		return err
	}
	target, err := h.optionalJob(user, req.JobID)
	if err != nil {
		return err
	}

	eval, err := h.engine.EvaluateAnswer(c.UserContext(), req.Question, req.Answer, target)
	if err != nil {
		return engineFailed(err)
	}
	return reply(c, eval)
}
