package devserver

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
)

func matchesApplication(a *application.Application, f application.Filters) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(strings.Join([]string{
		string(a.JobTitle), string(a.CompanyName), a.ApplicantName, string(a.ApplicantEmail),
	}, " "), f.Search)
}

// canSeeApplication: the applicant or the company that owns the job. Lock held.
func (s *Store) canSeeApplication(u *auth.User, a *application.Application) bool {
	if a.ApplicantID == u.ID || u.Role == kernel.RoleAdmin {
		return true
	}
	j, ok := s.jobs[a.JobID]
	return ok && ownsJob(u, j)
}

func (s *Store) ownedApplication(owner *auth.User, id kernel.ApplicationID) (*application.Application, error) {
	a, ok := s.applications[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	j, ok := s.jobs[a.JobID]
	if !ok || !ownsJob(owner, j) {
		return nil, application.ErrInsufficientPermissions()
	}
	return a, nil
}

// Submit applies the seeker to a job
func (s *Store) Submit(applicant *auth.User, req application.SubmitApplicationRequest) (*application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[req.JobID]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	now := s.now()
	if !j.AcceptsApplications(now) {
		return nil, application.ErrJobNotPublished()
	}
	for _, a := range s.applications {
		if a.JobID == j.ID && a.ApplicantID == applicant.ID && a.Status != application.ApplicationStatusWithdrawn {
			return nil, application.ErrApplicationAlreadyExists()
		}
	}

	resume := req.ResumeURL
	if p, ok := s.profiles[applicant.ID]; ok && resume == "" {
		resume = p.ResumeURL
	}
	a := &application.Application{
		ID:             kernel.ApplicationID(newID()),
		JobID:          j.ID,
		JobTitle:       j.Title,
		CompanyName:    j.CompanyName,
		ApplicantID:    applicant.ID,
		ApplicantName:  applicant.FullName(),
		ApplicantEmail: applicant.Email,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      resume,
		Status:         application.ApplicationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.applications[a.ID] = a
	s.appOrder = append([]kernel.ApplicationID{a.ID}, s.appOrder...)

	for _, m := range s.teams[j.CompanyID] {
		if m.UserID.IsEmpty() {
			continue
		}
		s.notify(m.UserID, notification.TypeNewApplication,
			"New application",
			fmt.Sprintf("%s applied to %s", a.ApplicantName, j.Title),
			"/employer/jobs/"+j.ID.String()+"/applications",
			map[string]any{"application_id": a.ID, "job_id": j.ID})
	}

	out := *a
	return &out, nil
}

// ListMyApplications lists the seeker's applications, newest first
func (s *Store) ListMyApplications(applicant kernel.UserID, f application.Filters, opts kernel.PaginationOptions) *kernel.Paginated[application.Application] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []application.Application
	for _, id := range s.appOrder {
		a := s.applications[id]
		if a.ApplicantID == applicant && matchesApplication(a, f) {
			items = append(items, *a)
		}
	}
	return paginate(items, opts)
}

// GetApplication returns an application visible to the viewer
func (s *Store) GetApplication(viewer *auth.User, id kernel.ApplicationID) (*application.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.applications[id]
	if !ok || !s.canSeeApplication(viewer, a) {
		return nil, application.ErrApplicationNotFound()
	}
	out := *a
	return &out, nil
}

// Withdraw pulls the seeker's application and cancels its open interviews
func (s *Store) Withdraw(applicant *auth.User, id kernel.ApplicationID) (*application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok || a.ApplicantID != applicant.ID {
		return nil, application.ErrApplicationNotFound()
	}
	if !a.CanWithdraw() {
		return nil, application.ErrCannotWithdraw()
	}
	now := s.now()
	a.Status = application.ApplicationStatusWithdrawn
	a.StatusChangedAt = &now
	a.UpdatedAt = now

	for _, iv := range s.interviews {
		if iv.ApplicationID == id && iv.CanBeChanged() {
			iv.Status = interview.InterviewStatusCancelled
			iv.CancelReason = "Application withdrawn"
			iv.UpdatedAt = now
		}
	}

	out := *a
	return &out, nil
}

// JobApplications lists the applicants of one of the owner's jobs
func (s *Store) JobApplications(owner *auth.User, jobID kernel.JobID, f application.Filters, opts kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.ownedJob(owner, jobID); err != nil {
		return nil, err
	}
	var items []application.Application
	for _, id := range s.appOrder {
		a := s.applications[id]
		if a.JobID == jobID && matchesApplication(a, f) {
			items = append(items, *a)
		}
	}
	return paginate(items, opts), nil
}

// UpdateApplicationStatus moves an application along the pipeline
func (s *Store) UpdateApplicationStatus(owner *auth.User, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedApplication(owner, id)
	if err != nil {
		return nil, err
	}
	if !a.CanUpdateStatus(req.Status) {
		return nil, application.ErrInvalidStatusTransition().
			WithDetail("from", a.Status).
			WithDetail("to", req.Status)
	}
	now := s.now()
	a.Status = req.Status
	if req.Notes != "" {
		a.EmployerNotes = req.Notes
	}
	a.StatusChangedAt = &now
	a.UpdatedAt = now

	s.notify(a.ApplicantID, notification.TypeApplicationUpdate,
		"Application update",
		fmt.Sprintf("Your application to %s is now %s", a.JobTitle, strings.ToLower(string(a.Status))),
		"/applications/"+a.ID.String(),
		map[string]any{"application_id": a.ID, "status": a.Status})

	out := *a
	return &out, nil
}

// RateApplication stores the employer's rating
func (s *Store) RateApplication(owner *auth.User, id kernel.ApplicationID, req application.RateApplicationRequest) (*application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedApplication(owner, id)
	if err != nil {
		return nil, err
	}
	rating := req.Rating
	a.Rating = &rating
	if req.Notes != "" {
		a.EmployerNotes = req.Notes
	}
	a.UpdatedAt = s.now()

	out := *a
	return &out, nil
}

// ============================================================================
// Interviews
// ============================================================================

// canSeeInterview: the candidate or the company that owns the job. Lock held.
func (s *Store) canSeeInterview(u *auth.User, iv *interview.Interview) bool {
	if iv.CandidateID == u.ID || u.Role == kernel.RoleAdmin {
		return true
	}
	j, ok := s.jobs[iv.JobID]
	return ok && ownsJob(u, j)
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ScheduleInterview books an interview for a shortlisted applicant
func (s *Store) ScheduleInterview(owner *auth.User, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedApplication(owner, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !a.CanScheduleInterview() {
		return nil, interview.ErrNotShortlisted()
	}

	now := s.now()
	iv := &interview.Interview{
		ID:              kernel.InterviewID(newID()),
		ApplicationID:   a.ID,
		JobID:           a.JobID,
		JobTitle:        a.JobTitle,
		CompanyName:     a.CompanyName,
		CandidateID:     a.ApplicantID,
		CandidateName:   a.ApplicantName,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Location:        req.Location,
		MeetingURL:      req.MeetingURL,
		Notes:           req.Notes,
		Status:          interview.InterviewStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.checkSlot(owner, iv); err != nil {
		return nil, err
	}
	s.interviews[iv.ID] = iv
	s.interviewList = append(s.interviewList, iv.ID)

	if a.Status == application.ApplicationStatusShortlisted {
		a.Status = application.ApplicationStatusInterviewing
		a.StatusChangedAt = &now
		a.UpdatedAt = now
	}
	s.notify(a.ApplicantID, notification.TypeInterview,
		"Interview scheduled",
		fmt.Sprintf("%s scheduled an interview for %s on %s", a.CompanyName, a.JobTitle, iv.ScheduledAt.Format("Jan 2 15:04")),
		"/interviews/"+iv.ID.String(),
		map[string]any{"interview_id": iv.ID})

	out := *iv
	return &out, nil
}

// checkSlot rejects overlaps with the company's other live interviews. Lock held.
func (s *Store) checkSlot(owner *auth.User, iv *interview.Interview) error {
	for _, other := range s.interviews {
		if other.ID == iv.ID || !other.CanBeChanged() {
			continue
		}
		j, ok := s.jobs[other.JobID]
		if !ok || !ownsJob(owner, j) {
			continue
		}
		if overlaps(iv.ScheduledAt, iv.EndsAt(), other.ScheduledAt, other.EndsAt()) {
			return interview.ErrSlotTaken()
		}
	}
	return nil
}

func (s *Store) ownedInterview(owner *auth.User, id kernel.InterviewID) (*interview.Interview, error) {
	iv, ok := s.interviews[id]
	if !ok {
		return nil, interview.ErrInterviewNotFound()
	}
	j, ok := s.jobs[iv.JobID]
	if !ok || !ownsJob(owner, j) {
		return nil, application.ErrInsufficientPermissions()
	}
	return iv, nil
}

// UpdateInterview edits or reschedules an interview
func (s *Store) UpdateInterview(owner *auth.User, id kernel.InterviewID, req interview.UpdateInterviewRequest) (*interview.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iv, err := s.ownedInterview(owner, id)
	if err != nil {
		return nil, err
	}
	if !iv.CanBeChanged() {
		return nil, interview.ErrCannotChange()
	}

	updated := *iv
	if req.ScheduledAt != nil && !req.ScheduledAt.Equal(iv.ScheduledAt) {
		updated.ScheduledAt = *req.ScheduledAt
		updated.Status = interview.InterviewStatusRescheduled
	}
	set(&updated.DurationMinutes, req.DurationMinutes)
	set(&updated.Type, req.Type)
	set(&updated.Location, req.Location)
	set(&updated.MeetingURL, req.MeetingURL)
	set(&updated.Notes, req.Notes)
	if err := s.checkSlot(owner, &updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()
	*iv = updated

	if iv.Status == interview.InterviewStatusRescheduled {
		s.notify(iv.CandidateID, notification.TypeInterview,
			"Interview rescheduled",
			fmt.Sprintf("Your interview for %s moved to %s", iv.JobTitle, iv.ScheduledAt.Format("Jan 2 15:04")),
			"/interviews/"+iv.ID.String(),
			map[string]any{"interview_id": iv.ID})
	}

	out := *iv
	return &out, nil
}

// CancelInterview calls off an interview. Either side may cancel.
func (s *Store) CancelInterview(viewer *auth.User, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iv, ok := s.interviews[id]
	if !ok || !s.canSeeInterview(viewer, iv) {
		return nil, interview.ErrInterviewNotFound()
	}
	if !iv.CanBeChanged() {
		return nil, interview.ErrCannotChange()
	}
	iv.Status = interview.InterviewStatusCancelled
	iv.CancelReason = req.Reason
	iv.UpdatedAt = s.now()

	if viewer.ID != iv.CandidateID {
		s.notify(iv.CandidateID, notification.TypeInterview,
			"Interview cancelled",
			fmt.Sprintf("Your interview for %s was cancelled", iv.JobTitle),
			"/interviews/"+iv.ID.String(),
			map[string]any{"interview_id": iv.ID})
	}

	out := *iv
	return &out, nil
}

// GetInterview returns an interview visible to the viewer
func (s *Store) GetInterview(viewer *auth.User, id kernel.InterviewID) (*interview.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iv, ok := s.interviews[id]
	if !ok || !s.canSeeInterview(viewer, iv) {
		return nil, interview.ErrInterviewNotFound()
	}
	out := *iv
	return &out, nil
}

// ListInterviews lists the viewer's interviews in chronological order:
// the candidate's own, or every interview of the employer's company
func (s *Store) ListInterviews(viewer *auth.User, f interview.Filters, opts kernel.PaginationOptions) *kernel.Paginated[interview.Interview] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var items []interview.Interview
	for _, id := range s.interviewList {
		iv := s.interviews[id]
		if !s.canSeeInterview(viewer, iv) {
			continue
		}
		if f.Status != "" && iv.Status != f.Status {
			continue
		}
		if f.Upcoming != nil && *f.Upcoming != iv.IsUpcoming(now) {
			continue
		}
		items = append(items, *iv)
	}
	slices.SortStableFunc(items, func(a, b interview.Interview) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return paginate(items, opts)
}
