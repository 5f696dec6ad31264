package devserver

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
	"github.com/Abraxas-365/hireboard/recruitment/seeker/seekersrv"
	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the seeker's profile
// GET /api/job-seeker/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	p, err := h.store.Profile(viewerID(c))
	if err != nil {
		return err
	}
	return reply(c, p)
}

// UpdateProfile edits the profile header
// PUT /api/job-seeker/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	req, err := bind[seeker.UpdateProfileRequest](c)
	if err != nil {
		return err
	}
	p, err := h.store.UpdateProfile(viewerID(c), req)
	if err != nil {
		return err
	}
	return reply(c, p)
}

// UploadResume stores a resume and points the profile at it
// POST /api/job-seeker/profile/resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	f, err := h.receive(c, "resume", seekersrv.ResumeTypes)
	if err != nil {
		return err
	}
	if f.ContentType == "application/pdf" {
		if err := seekersrv.CheckResumePages(f.Data); err != nil {
			return err
		}
	}

	url := h.store.PutFile(c.BaseURL(), f)
	if err := h.store.SetResume(f.Owner, url); err != nil {
		return err
	}
	if err := h.analyzer.Submit(c.UserContext(), f.Owner, url); err != nil {
		logx.Warnf("resume analysis not queued: %v", err)
	}
	return reply(c, seeker.UploadResponse{URL: url})
}

// UploadProfilePicture stores a profile picture
// POST /api/job-seeker/profile/picture
func (h *Handlers) UploadProfilePicture(c *fiber.Ctx) error {
	f, err := h.receive(c, "picture", seekersrv.PictureTypes)
	if err != nil {
		return err
	}

	url := h.store.PutFile(c.BaseURL(), f)
	if err := h.store.SetProfilePicture(f.Owner, url); err != nil {
		return err
	}
	return reply(c, seeker.UploadResponse{URL: url})
}

// receive reads one multipart file, enforcing the size limit and the
// allowed content types
func (h *Handlers) receive(c *fiber.Ctx, field string, allowed map[string]bool) (storedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return storedFile{}, ErrMissingFile().WithDetail("field", field)
	}
	if fh.Size > seekersrv.MaxUploadSize {
		return storedFile{}, seeker.ErrFileTooLarge().WithDetail("size", fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return storedFile{}, ErrMissingFile().WithDetail("field", field).WithCause(err)
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, seekersrv.MaxUploadSize+1))
	if err != nil {
		return storedFile{}, ErrMissingFile().WithDetail("field", field).WithCause(err)
	}
	if len(data) > seekersrv.MaxUploadSize {
		return storedFile{}, seeker.ErrFileTooLarge().WithDetail("size", len(data))
	}

	name := filepath.Base(fh.Filename)
	contentType, _, _ := strings.Cut(fh.Header.Get(fiber.HeaderContentType), ";")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = fsx.DetectContentType(name, data)
	}
	if !allowed[contentType] {
		return storedFile{}, seeker.ErrUnsupportedFileType().WithDetail("content_type", contentType)
	}

	return storedFile{
		Name:        name,
		ContentType: contentType,
		Data:        data,
		Owner:       viewerID(c),
	}, nil
}

// ServeFile returns an uploaded file
// GET /files/:key/:name
func (h *Handlers) ServeFile(c *fiber.Ctx) error {
	f, ok := h.store.File(c.Params("key") + "/" + c.Params("name"))
	if !ok {
		return ErrFileNotFound()
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}

// ============================================================================
// Skills, experience and education
// ============================================================================

// AddSkill - POST /api/job-seeker/skills
func (h *Handlers) AddSkill(c *fiber.Ctx) error {
	req, err := bind[seeker.SkillRequest](c)
	if err != nil {
		return err
	}
	sk, err := h.store.AddSkill(viewerID(c), req)
	if err != nil {
		return err
	}
	return replyCreated(c, sk)
}

// UpdateSkill - PUT /api/job-seeker/skills/:id
func (h *Handlers) UpdateSkill(c *fiber.Ctx) error {
	req, err := bind[seeker.SkillRequest](c)
	if err != nil {
		return err
	}
	sk, err := h.store.UpdateSkill(viewerID(c), kernel.SkillID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, sk)
}

// DeleteSkill - DELETE /api/job-seeker/skills/:id
func (h *Handlers) DeleteSkill(c *fiber.Ctx) error {
	if err := h.store.DeleteSkill(viewerID(c), kernel.SkillID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Skill deleted")
}

// AddExperience - POST /api/job-seeker/experience
func (h *Handlers) AddExperience(c *fiber.Ctx) error {
	req, err := bind(c, seekersrv.ExperienceRules...)
	if err != nil {
		return err
	}
	e, err := h.store.AddExperience(viewerID(c), req)
	if err != nil {
		return err
	}
	return replyCreated(c, e)
}

// UpdateExperience - PUT /api/job-seeker/experience/:id
func (h *Handlers) UpdateExperience(c *fiber.Ctx) error {
	req, err := bind(c, seekersrv.ExperienceRules...)
	if err != nil {
		return err
	}
	e, err := h.store.UpdateExperience(viewerID(c), kernel.ExperienceID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, e)
}

// DeleteExperience - DELETE /api/job-seeker/experience/:id
func (h *Handlers) DeleteExperience(c *fiber.Ctx) error {
	if err := h.store.DeleteExperience(viewerID(c), kernel.ExperienceID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Experience deleted")
}

// AddEducation - POST /api/job-seeker/education
func (h *Handlers) AddEducation(c *fiber.Ctx) error {
	req, err := bind(c, seekersrv.EducationRules...)
	if err != nil {
		return err
	}
	e, err := h.store.AddEducation(viewerID(c), req)
	if err != nil {
		return err
	}
	return replyCreated(c, e)
}

// UpdateEducation - PUT /api/job-seeker/education/:id
func (h *Handlers) UpdateEducation(c *fiber.Ctx) error {
	req, err := bind(c, seekersrv.EducationRules...)
	if err != nil {
		return err
	}
	e, err := h.store.UpdateEducation(viewerID(c), kernel.EducationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return reply(c, e)
}

// DeleteEducation - DELETE /api/job-seeker/education/:id
func (h *Handlers) DeleteEducation(c *fiber.Ctx) error {
	if err := h.store.DeleteEducation(viewerID(c), kernel.EducationID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Education deleted")
}
