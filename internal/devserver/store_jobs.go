package devserver

import (
	"slices"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/job"
)

// view copies a job and fills the viewer relative fields. Lock held.
func (s *Store) view(j *job.Job, viewer kernel.UserID) job.Job {
	out := *j
	out.Requirements = slices.Clone(j.Requirements)
	out.Benefits = slices.Clone(j.Benefits)
	out.Skills = slices.Clone(j.Skills)
	out.IsSaved = slices.Contains(s.saved[viewer], j.ID)
	out.ApplicationCount = 0
	for _, a := range s.applications {
		if a.JobID != j.ID {
			continue
		}
		out.ApplicationCount++
		if a.ApplicantID == viewer {
			out.HasApplied = true
		}
	}
	return out
}

func matchesJob(j *job.Job, f job.Filters) bool {
	if f.Search != "" {
		haystack := strings.Join(append([]string{
			string(j.Title), string(j.Description), string(j.CompanyName),
		}, j.Skills...), " ")
		if !containsFold(haystack, f.Search) {
			return false
		}
	}
	if !containsFold(j.Location, f.Location) {
		return false
	}
	if f.EmploymentType != "" && j.EmploymentType != f.EmploymentType {
		return false
	}
	if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.SalaryMin != nil {
		top := j.SalaryMax
		if top == nil {
			top = j.SalaryMin
		}
		if top == nil || *top < *f.SalaryMin {
			return false
		}
	}
	if f.SalaryMax != nil && j.SalaryMin != nil && *j.SalaryMin > *f.SalaryMax {
		return false
	}
	if f.IsRemote != nil && j.IsRemote != *f.IsRemote {
		return false
	}
	return true
}

// openJobs returns the public feed, newest first. Lock held.
func (s *Store) openJobs() []*job.Job {
	var out []*job.Job
	for _, id := range s.jobOrder {
		j := s.jobs[id]
		if j.IsPublished() && j.IsActive {
			out = append(out, j)
		}
	}
	return out
}

// OpenJobs returns the whole public feed, for ranking
func (s *Store) OpenJobs(viewer kernel.UserID) []job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := s.openJobs()
	out := make([]job.Job, 0, len(open))
	for _, j := range open {
		out = append(out, s.view(j, viewer))
	}
	return out
}

// ListJobs returns a page of the public job feed
func (s *Store) ListJobs(viewer kernel.UserID, f job.Filters, opts kernel.PaginationOptions) *kernel.Paginated[job.Job] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []job.Job
	for _, j := range s.openJobs() {
		if matchesJob(j, f) {
			items = append(items, s.view(j, viewer))
		}
	}
	return paginate(items, opts)
}

// GetJob returns a published job, or any job of the viewer's company
func (s *Store) GetJob(viewer *auth.User, id kernel.JobID) (*job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok || (!j.IsPublished() && !ownsJob(viewer, j)) {
		return nil, job.ErrJobNotFound()
	}
	out := s.view(j, idOf(viewer))
	return &out, nil
}

func idOf(u *auth.User) kernel.UserID {
	if u == nil {
		return ""
	}
	return u.ID
}

// RecommendedJobs ranks open jobs by skill overlap with the seeker's profile
func (s *Store) RecommendedJobs(viewer kernel.UserID, limit int) []job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var skills []string
	if p, ok := s.profiles[viewer]; ok {
		for _, sk := range p.Skills {
			skills = append(skills, sk.Name)
		}
	}
	return s.rank(s.openJobs(), viewer, limit, func(j *job.Job) int {
		return skillOverlap(j.Skills, skills)
	})
}

// SimilarJobs ranks open jobs by likeness to the given one
func (s *Store) SimilarJobs(viewer kernel.UserID, id kernel.JobID, limit int) ([]job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	var pool []*job.Job
	for _, j := range s.openJobs() {
		if j.ID != id {
			pool = append(pool, j)
		}
	}
	return s.rank(pool, viewer, limit, func(j *job.Job) int {
		score := 2 * skillOverlap(j.Skills, ref.Skills)
		if j.EmploymentType == ref.EmploymentType {
			score++
		}
		if j.ExperienceLevel == ref.ExperienceLevel {
			score++
		}
		if j.IsRemote == ref.IsRemote {
			score++
		}
		return score
	}), nil
}

// rank orders jobs by descending score, keeping feed order on ties. Lock held.
func (s *Store) rank(pool []*job.Job, viewer kernel.UserID, limit int, score func(*job.Job) int) []job.Job {
	if limit <= 0 || limit > kernel.MaxPageSize {
		limit = 5
	}
	ranked := slices.Clone(pool)
	slices.SortStableFunc(ranked, func(a, b *job.Job) int {
		return score(b) - score(a)
	})
	out := make([]job.Job, 0, limit)
	for _, j := range ranked[:min(limit, len(ranked))] {
		out = append(out, s.view(j, viewer))
	}
	return out
}

func skillOverlap(a, b []string) int {
	n := 0
	for _, x := range a {
		if slices.ContainsFunc(b, func(y string) bool { return strings.EqualFold(x, y) }) {
			n++
		}
	}
	return n
}

// SaveJob bookmarks a job for the seeker
func (s *Store) SaveJob(viewer kernel.UserID, id kernel.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	if slices.Contains(s.saved[viewer], id) {
		return job.ErrAlreadySaved()
	}
	s.saved[viewer] = append([]kernel.JobID{id}, s.saved[viewer]...)
	return nil
}

// UnsaveJob removes a bookmark. Removing a missing bookmark is a no-op.
func (s *Store) UnsaveJob(viewer kernel.UserID, id kernel.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	s.saved[viewer] = slices.DeleteFunc(s.saved[viewer], func(x kernel.JobID) bool { return x == id })
	return nil
}

// SavedJobs lists the seeker's bookmarks, most recent first
func (s *Store) SavedJobs(viewer kernel.UserID, opts kernel.PaginationOptions) *kernel.Paginated[job.Job] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []job.Job
	for _, id := range s.saved[viewer] {
		if j, ok := s.jobs[id]; ok {
			items = append(items, s.view(j, viewer))
		}
	}
	return paginate(items, opts)
}

// ============================================================================
// Employer postings
// ============================================================================

func ownsJob(u *auth.User, j *job.Job) bool {
	return u != nil && u.CompanyID != nil && *u.CompanyID == j.CompanyID
}

func (s *Store) ownedJob(owner *auth.User, id kernel.JobID) (*job.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	if !ownsJob(owner, j) {
		return nil, job.ErrInsufficientPermissions()
	}
	return j, nil
}

// CreateJob publishes a new posting for the owner's company
func (s *Store) CreateJob(owner *auth.User, req job.CreateJobRequest) (*job.Job, error) {
	if owner.CompanyID == nil {
		return nil, employer.ErrNotCompanyMember()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	j := &job.Job{
		ID:              kernel.JobID(newID()),
		Title:           req.Title,
		Description:     req.Description,
		CompanyID:       *owner.CompanyID,
		CompanyName:     owner.CompanyName,
		Location:        req.Location,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Currency:        req.Currency,
		IsRemote:        req.IsRemote,
		Requirements:    nonNil(req.Requirements),
		Benefits:        nonNil(req.Benefits),
		Skills:          nonNil(req.Skills),
		Status:          job.JobStatusPublished,
		IsActive:        true,
		PostedBy:        owner.ID,
		Deadline:        req.Deadline,
		PublishedAt:     &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if j.Currency == "" {
		j.Currency = "USD"
	}
	s.jobs[j.ID] = j
	s.jobOrder = append([]kernel.JobID{j.ID}, s.jobOrder...)

	out := s.view(j, owner.ID)
	return &out, nil
}

// UpdateJob applies the set fields of req
func (s *Store) UpdateJob(owner *auth.User, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.ownedJob(owner, id)
	if err != nil {
		return nil, err
	}
	if !j.CanBeEdited() {
		return nil, job.ErrJobArchived()
	}

	set(&j.Title, req.Title)
	set(&j.Description, req.Description)
	set(&j.Location, req.Location)
	set(&j.EmploymentType, req.EmploymentType)
	set(&j.ExperienceLevel, req.ExperienceLevel)
	set(&j.IsRemote, req.IsRemote)
	set(&j.IsActive, req.IsActive)
	set(&j.Requirements, req.Requirements)
	set(&j.Benefits, req.Benefits)
	set(&j.Skills, req.Skills)
	if req.SalaryMin != nil {
		j.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		j.SalaryMax = req.SalaryMax
	}
	if req.Deadline != nil {
		j.Deadline = req.Deadline
	}
	if req.Status != nil && *req.Status != j.Status {
		j.Status = *req.Status
		if j.IsPublished() && j.PublishedAt == nil {
			now := s.now()
			j.PublishedAt = &now
		}
	}
	j.UpdatedAt = s.now()

	out := s.view(j, owner.ID)
	return &out, nil
}

// DeleteJob removes a posting together with its applications and interviews
func (s *Store) DeleteJob(owner *auth.User, id kernel.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedJob(owner, id); err != nil {
		return err
	}
	delete(s.jobs, id)
	s.jobOrder = slices.DeleteFunc(s.jobOrder, func(x kernel.JobID) bool { return x == id })
	for uid, ids := range s.saved {
		s.saved[uid] = slices.DeleteFunc(ids, func(x kernel.JobID) bool { return x == id })
	}
	for appID, a := range s.applications {
		if a.JobID == id {
			delete(s.applications, appID)
		}
	}
	s.appOrder = slices.DeleteFunc(s.appOrder, func(x kernel.ApplicationID) bool {
		_, ok := s.applications[x]
		return !ok
	})
	for ivID, iv := range s.interviews {
		if iv.JobID == id {
			delete(s.interviews, ivID)
		}
	}
	s.interviewList = slices.DeleteFunc(s.interviewList, func(x kernel.InterviewID) bool {
		_, ok := s.interviews[x]
		return !ok
	})
	return nil
}

// MyJobs lists the owner's company postings, newest first
func (s *Store) MyJobs(owner *auth.User, f employer.PostingFilters, opts kernel.PaginationOptions) *kernel.Paginated[job.Job] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []job.Job
	for _, id := range s.jobOrder {
		j := s.jobs[id]
		if !ownsJob(owner, j) {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if !containsFold(string(j.Title), f.Search) {
			continue
		}
		items = append(items, s.view(j, owner.ID))
	}
	return paginate(items, opts)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
