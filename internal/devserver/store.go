package devserver

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/employer"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         auth.User
	passwordHash []byte
	tokenVersion int
}

type storedFile struct {
	Name        string
	ContentType string
	Data        []byte
	Owner       kernel.UserID
}

// Store is the in-memory database of the development backend. Every
// exported method takes the lock; unexported helpers expect it held.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	accounts      map[kernel.UserID]*account
	byEmail       map[kernel.Email]kernel.UserID
	resetTokens   map[string]kernel.UserID
	profiles      map[kernel.UserID]*seeker.Profile
	jobs          map[kernel.JobID]*job.Job
	jobOrder      []kernel.JobID
	saved         map[kernel.UserID][]kernel.JobID
	applications  map[kernel.ApplicationID]*application.Application
	appOrder      []kernel.ApplicationID
	interviews    map[kernel.InterviewID]*interview.Interview
	interviewList []kernel.InterviewID
	notifications map[kernel.UserID][]*notification.Notification
	teams         map[kernel.CompanyID][]*employer.TeamMember
	files         map[string]storedFile
	analyses      map[kernel.FileURL]*ai.Analysis
}

// NewStore creates an empty store
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:           now,
		accounts:      make(map[kernel.UserID]*account),
		byEmail:       make(map[kernel.Email]kernel.UserID),
		resetTokens:   make(map[string]kernel.UserID),
		profiles:      make(map[kernel.UserID]*seeker.Profile),
		jobs:          make(map[kernel.JobID]*job.Job),
		saved:         make(map[kernel.UserID][]kernel.JobID),
		applications:  make(map[kernel.ApplicationID]*application.Application),
		interviews:    make(map[kernel.InterviewID]*interview.Interview),
		notifications: make(map[kernel.UserID][]*notification.Notification),
		teams:         make(map[kernel.CompanyID][]*employer.TeamMember),
		files:         make(map[string]storedFile),
		analyses:      make(map[kernel.FileURL]*ai.Analysis),
	}
}

func newID() string {
	return uuid.NewString()
}

// paginate slices items for the requested page
func paginate[T any](items []T, opts kernel.PaginationOptions) *kernel.Paginated[T] {
	opts = opts.Normalize()
	total := len(items)
	start := min(opts.Offset(), total)
	end := min(start+opts.PageSize, total)
	return kernel.NewPaginated(slices.Clone(items[start:end]), opts, total)
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ============================================================================
// Accounts
// ============================================================================

// CreateAccount registers a user. Employers get a company and become its owner.
func (s *Store) CreateAccount(req auth.RegisterRequest) (*auth.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := kernel.Email(strings.ToLower(string(req.Email)))
	if _, taken := s.byEmail[email]; taken {
		return nil, auth.ErrEmailTaken()
	}

	now := s.now()
	user := auth.User{
		ID:        kernel.UserID(newID()),
		Email:     email,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
	}

	switch req.Role {
	case kernel.RoleEmployer:
		companyID := kernel.CompanyID(newID())
		user.CompanyID = &companyID
		user.CompanyName = req.CompanyName
		joined := now
		s.teams[companyID] = []*employer.TeamMember{{
			ID:        kernel.TeamMemberID(newID()),
			UserID:    user.ID,
			Email:     email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      employer.TeamRoleOwner,
			Status:    employer.MemberStatusActive,
			InvitedAt: now,
			JoinedAt:  &joined,
		}}
	case kernel.RoleJobSeeker:
		s.profiles[user.ID] = &seeker.Profile{
			UserID:      user.ID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       email,
			OpenToWork:  true,
			Skills:      []seeker.Skill{},
			Experiences: []seeker.Experience{},
			Educations:  []seeker.Education{},
			UpdatedAt:   now,
		}
	}

	s.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.byEmail[email] = user.ID
	out := user
	return &out, nil
}

// Authenticate checks credentials
func (s *Store) Authenticate(email kernel.Email, password string) (*auth.User, int, error) {
	s.mu.RLock()
	id, ok := s.byEmail[kernel.Email(strings.ToLower(string(email)))]
	var acc account
	if ok {
		acc = *s.accounts[id]
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, 0, auth.ErrInvalidCredentials()
	}
	return &acc.user, acc.tokenVersion, nil
}

// User returns the account and its current token version
func (s *Store) User(id kernel.UserID) (*auth.User, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, 0, false
	}
	u := acc.user
	return &u, acc.tokenVersion, true
}

// RevokeTokens invalidates every token issued to the user so far
func (s *Store) RevokeTokens(id kernel.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[id]; ok {
		acc.tokenVersion++
	}
}

// IssueResetToken stores a password reset token. Unknown emails yield ""
// so callers cannot probe accounts.
func (s *Store) IssueResetToken(email kernel.Email) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[kernel.Email(strings.ToLower(string(email)))]
	if !ok {
		return ""
	}
	token := newID()
	s.resetTokens[token] = id
	return token
}

// ResetPassword consumes a reset token and revokes existing sessions
func (s *Store) ResetPassword(token, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resetTokens[token]
	if !ok {
		return auth.ErrInvalidResetToken()
	}
	delete(s.resetTokens, token)
	acc := s.accounts[id]
	acc.passwordHash = hash
	acc.tokenVersion++
	return nil
}

// ============================================================================
// Files
// ============================================================================

// PutFile stores an uploaded file and returns its URL
func (s *Store) PutFile(baseURL string, f storedFile) kernel.FileURL {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := newID() + "/" + f.Name
	s.files[key] = f
	return kernel.FileURL(strings.TrimRight(baseURL, "/") + "/files/" + key)
}

// File returns a stored file by key
func (s *Store) File(key string) (storedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[key]
	return f, ok
}

// FileByURL resolves a URL returned by PutFile
func (s *Store) FileByURL(url kernel.FileURL) (storedFile, bool) {
	_, key, ok := strings.Cut(string(url), "/files/")
	if !ok {
		return storedFile{}, false
	}
	return s.File(key)
}

// SetAnalysis caches the background analysis of a resume
func (s *Store) SetAnalysis(url kernel.FileURL, a *ai.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[url] = a
}

// Analysis returns the cached analysis of a resume
func (s *Store) Analysis(url kernel.FileURL) (*ai.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[url]
	return a, ok
}
