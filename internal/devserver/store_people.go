package devserver

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

// ============================================================================
// Job seeker profile
// ============================================================================

func cloneProfile(p *seeker.Profile) *seeker.Profile {
	out := *p
	out.Skills = slices.Clone(p.Skills)
	out.Experiences = slices.Clone(p.Experiences)
	out.Educations = slices.Clone(p.Educations)
	return &out
}

// editProfile runs fn on the user's profile under the write lock
func (s *Store) editProfile(id kernel.UserID, fn func(p *seeker.Profile) error) (*seeker.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, seeker.ErrProfileNotFound()
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	return cloneProfile(p), nil
}

// Profile returns the seeker's profile
func (s *Store) Profile(id kernel.UserID) (*seeker.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, seeker.ErrProfileNotFound()
	}
	return cloneProfile(p), nil
}

// UpdateProfile rewrites the profile header and keeps the account name in sync
func (s *Store) UpdateProfile(id kernel.UserID, req seeker.UpdateProfileRequest) (*seeker.Profile, error) {
	return s.editProfile(id, func(p *seeker.Profile) error {
		p.FirstName = req.FirstName
		p.LastName = req.LastName
		p.Phone = req.Phone
		p.Headline = req.Headline
		p.Bio = req.Bio
		p.Location = req.Location
		p.WebsiteURL = req.WebsiteURL
		p.LinkedInURL = req.LinkedInURL
		p.GithubURL = req.GithubURL
		p.DesiredSalary = req.DesiredSalary
		p.OpenToWork = req.OpenToWork
		if acc, ok := s.accounts[id]; ok {
			acc.user.FirstName = req.FirstName
			acc.user.LastName = req.LastName
		}
		return nil
	})
}

// SetResume points the profile at an uploaded resume
func (s *Store) SetResume(id kernel.UserID, url kernel.FileURL) error {
	_, err := s.editProfile(id, func(p *seeker.Profile) error {
		p.ResumeURL = url
		return nil
	})
	return err
}

// SetProfilePicture points the profile at an uploaded picture
func (s *Store) SetProfilePicture(id kernel.UserID, url kernel.FileURL) error {
	_, err := s.editProfile(id, func(p *seeker.Profile) error {
		p.ProfilePictureURL = url
		return nil
	})
	return err
}

func skillFrom(id kernel.SkillID, req seeker.SkillRequest) seeker.Skill {
	return seeker.Skill{ID: id, Name: req.Name, Level: req.Level, YearsOfExperience: req.YearsOfExperience}
}

// AddSkill appends a skill
func (s *Store) AddSkill(uid kernel.UserID, req seeker.SkillRequest) (*seeker.Skill, error) {
	sk := skillFrom(kernel.SkillID(newID()), req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		p.Skills = append(p.Skills, sk)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

// UpdateSkill replaces a skill
func (s *Store) UpdateSkill(uid kernel.UserID, id kernel.SkillID, req seeker.SkillRequest) (*seeker.Skill, error) {
	sk := skillFrom(id, req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Skills, func(x seeker.Skill) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrSkillNotFound()
		}
		p.Skills[i] = sk
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

// DeleteSkill removes a skill
func (s *Store) DeleteSkill(uid kernel.UserID, id kernel.SkillID) error {
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Skills, func(x seeker.Skill) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrSkillNotFound()
		}
		p.Skills = slices.Delete(p.Skills, i, i+1)
		return nil
	})
	return err
}

func experienceFrom(id kernel.ExperienceID, req seeker.ExperienceRequest) seeker.Experience {
	e := seeker.Experience{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if !req.IsCurrent {
		e.EndDate = req.EndDate
	}
	return e
}

// AddExperience appends an experience entry
func (s *Store) AddExperience(uid kernel.UserID, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	e := experienceFrom(kernel.ExperienceID(newID()), req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		p.Experiences = append(p.Experiences, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExperience replaces an experience entry
func (s *Store) UpdateExperience(uid kernel.UserID, id kernel.ExperienceID, req seeker.ExperienceRequest) (*seeker.Experience, error) {
	e := experienceFrom(id, req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Experiences, func(x seeker.Experience) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrExperienceNotFound()
		}
		p.Experiences[i] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExperience removes an experience entry
func (s *Store) DeleteExperience(uid kernel.UserID, id kernel.ExperienceID) error {
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Experiences, func(x seeker.Experience) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrExperienceNotFound()
		}
		p.Experiences = slices.Delete(p.Experiences, i, i+1)
		return nil
	})
	return err
}

func educationFrom(id kernel.EducationID, req seeker.EducationRequest) seeker.Education {
	e := seeker.Education{
		ID:           id,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		IsCurrent:    req.IsCurrent,
		Grade:        req.Grade,
		Description:  req.Description,
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if !req.IsCurrent {
		e.EndDate = req.EndDate
	}
	return e
}

// AddEducation appends an education entry
func (s *Store) AddEducation(uid kernel.UserID, req seeker.EducationRequest) (*seeker.Education, error) {
	e := educationFrom(kernel.EducationID(newID()), req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		p.Educations = append(p.Educations, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEducation replaces an education entry
func (s *Store) UpdateEducation(uid kernel.UserID, id kernel.EducationID, req seeker.EducationRequest) (*seeker.Education, error) {
	e := educationFrom(id, req)
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Educations, func(x seeker.Education) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrEducationNotFound()
		}
		p.Educations[i] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEducation removes an education entry
func (s *Store) DeleteEducation(uid kernel.UserID, id kernel.EducationID) error {
	_, err := s.editProfile(uid, func(p *seeker.Profile) error {
		i := slices.IndexFunc(p.Educations, func(x seeker.Education) bool { return x.ID == id })
		if i < 0 {
			return seeker.ErrEducationNotFound()
		}
		p.Educations = slices.Delete(p.Educations, i, i+1)
		return nil
	})
	return err
}

// ============================================================================
// Notifications
// ============================================================================

// notify prepends a notification to the user's inbox. Lock held.
func (s *Store) notify(to kernel.UserID, typ notification.NotificationType, title, message, link string, data map[string]any) {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	n := &notification.Notification{
		ID:        kernel.NotificationID(newID()),
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		Data:      raw,
		CreatedAt: s.now(),
	}
	s.notifications[to] = append([]*notification.Notification{n}, s.notifications[to]...)
}

// Notify delivers a notification to a user
func (s *Store) Notify(to kernel.UserID, typ notification.NotificationType, title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(to, typ, title, message, "", nil)
}

// Notifications lists the user's inbox, newest first
func (s *Store) Notifications(uid kernel.UserID, f notification.Filters, opts kernel.PaginationOptions) *kernel.Paginated[notification.Notification] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []notification.Notification
	for _, n := range s.notifications[uid] {
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		if f.UnreadOnly != nil && *f.UnreadOnly && n.IsRead {
			continue
		}
		items = append(items, *n)
	}
	return paginate(items, opts)
}

// UnreadCount counts unread notifications
func (s *Store) UnreadCount(uid kernel.UserID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, x := range s.notifications[uid] {
		if !x.IsRead {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read
func (s *Store) MarkRead(uid kernel.UserID, id kernel.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications[uid] {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound()
}

// MarkAllRead flags the whole inbox as read
func (s *Store) MarkAllRead(uid kernel.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications[uid] {
		n.IsRead = true
	}
}

// DeleteNotification removes one notification
func (s *Store) DeleteNotification(uid kernel.UserID, id kernel.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[uid]
	i := slices.IndexFunc(list, func(n *notification.Notification) bool { return n.ID == id })
	if i < 0 {
		return notification.ErrNotificationNotFound()
	}
	s.notifications[uid] = slices.Delete(list, i, i+1)
	return nil
}

// ============================================================================
// Company team
// ============================================================================

// team returns the member's company team and the member record. Lock held.
func (s *Store) team(u *auth.User) ([]*employer.TeamMember, *employer.TeamMember, error) {
	if u.CompanyID == nil {
		return nil, nil, employer.ErrNotCompanyMember()
	}
	members := s.teams[*u.CompanyID]
	i := slices.IndexFunc(members, func(m *employer.TeamMember) bool { return m.UserID == u.ID })
	if i < 0 {
		return nil, nil, employer.ErrNotCompanyMember()
	}
	return members, members[i], nil
}

func canManageTeam(m *employer.TeamMember) bool {
	return m.Role == employer.TeamRoleOwner || m.Role == employer.TeamRoleAdmin
}

// Team lists the company's members
func (s *Store) Team(u *auth.User) ([]employer.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, _, err := s.team(u)
	if err != nil {
		return nil, err
	}
	out := make([]employer.TeamMember, 0, len(members))
	for _, m := range members {
		out = append(out, *m)
	}
	return out, nil
}

// InviteMember adds an invited member to the company team
func (s *Store) InviteMember(u *auth.User, req employer.InviteMemberRequest) (*employer.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, me, err := s.team(u)
	if err != nil {
		return nil, err
	}
	if !canManageTeam(me) {
		return nil, employer.ErrInsufficientPermissions()
	}
	email := kernel.Email(strings.ToLower(string(req.Email)))
	if slices.ContainsFunc(members, func(m *employer.TeamMember) bool { return m.Email == email }) {
		return nil, employer.ErrMemberAlreadyInvited()
	}
	m := &employer.TeamMember{
		ID:        kernel.TeamMemberID(newID()),
		Email:     email,
		Role:      req.Role,
		Status:    employer.MemberStatusInvited,
		InvitedAt: s.now(),
	}
	s.teams[*u.CompanyID] = append(members, m)
	out := *m
	return &out, nil
}

// UpdateMemberRole changes a member's role. The owner's role is fixed.
func (s *Store) UpdateMemberRole(u *auth.User, id kernel.TeamMemberID, req employer.UpdateRoleRequest) (*employer.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, me, err := s.team(u)
	if err != nil {
		return nil, err
	}
	if !canManageTeam(me) {
		return nil, employer.ErrInsufficientPermissions()
	}
	i := slices.IndexFunc(members, func(m *employer.TeamMember) bool { return m.ID == id })
	if i < 0 {
		return nil, employer.ErrMemberNotFound()
	}
	if members[i].IsOwner() {
		return nil, employer.ErrCannotRemoveOwner()
	}
	members[i].Role = req.Role
	out := *members[i]
	return &out, nil
}

// RemoveMember takes a member off the team
func (s *Store) RemoveMember(u *auth.User, id kernel.TeamMemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, me, err := s.team(u)
	if err != nil {
		return err
	}
	if !canManageTeam(me) {
		return employer.ErrInsufficientPermissions()
	}
	i := slices.IndexFunc(members, func(m *employer.TeamMember) bool { return m.ID == id })
	if i < 0 {
		return employer.ErrMemberNotFound()
	}
	if !members[i].CanBeRemoved() {
		return employer.ErrCannotRemoveOwner()
	}
	s.teams[*u.CompanyID] = slices.Delete(members, i, i+1)
	return nil
}

// ============================================================================
// Dashboard
// ============================================================================

// Dashboard aggregates the company's postings, applications and interviews
func (s *Store) Dashboard(u *auth.User) (*employer.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, _, err := s.team(u); err != nil {
		return nil, err
	}
	d := &employer.Dashboard{
		ApplicationsByStatus: make(map[application.ApplicationStatus]int),
		RecentApplications:   []application.Application{},
	}
	owned := map[kernel.JobID]bool{}
	for _, j := range s.jobs {
		if !ownsJob(u, j) {
			continue
		}
		owned[j.ID] = true
		d.TotalJobs++
		if j.IsPublished() && j.IsActive {
			d.ActiveJobs++
		}
	}
	for _, id := range s.appOrder {
		a := s.applications[id]
		if !owned[a.JobID] {
			continue
		}
		d.TotalApplications++
		d.ApplicationsByStatus[a.Status]++
		switch a.Status {
		case application.ApplicationStatusPending:
			d.NewApplications++
		case application.ApplicationStatusHired:
			d.Hires++
		}
		if len(d.RecentApplications) < 5 {
			d.RecentApplications = append(d.RecentApplications, *a)
		}
	}
	now := s.now()
	for _, iv := range s.interviews {
		if owned[iv.JobID] && iv.IsUpcoming(now) {
			d.InterviewsScheduled++
		}
	}
	return d, nil
}
