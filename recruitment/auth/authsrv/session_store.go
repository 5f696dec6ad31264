package authsrv

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/pkg/session"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
)

// EndReason says why a session ended
type EndReason string

const (
	EndLogout       EndReason = "logout"
	EndUnauthorized EndReason = "unauthorized"
	EndExpired      EndReason = "expired"
)

// SessionStore owns the current session and its persisted copy. It is the
// token source and the 401 handler of the HTTP client.
type SessionStore struct {
	storage session.Storage
	now     func() time.Time

	// writeMu serialises every change so that memory and storage move together
	writeMu sync.Mutex

	mu        sync.RWMutex
	current   auth.Session
	loading   bool
	restored  bool
	listeners []func(EndReason)
}

// NewSessionStore creates a store that is loading until Restore completes
func NewSessionStore(storage session.Storage) *SessionStore {
	return &SessionStore{
		storage: storage,
		now:     time.Now,
		loading: true,
	}
}

// Token returns the current bearer token, or "" when signed out
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Current returns a copy of the session
func (s *SessionStore) Current() auth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Loading reports whether the persisted session is still being restored
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// OnSessionEnded registers fn to be called once every time a session ends
func (s *SessionStore) OnSessionEnded(fn func(EndReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore loads the persisted session. It runs once; later calls return nil.
// Incomplete, undecodable or expired records are cleared.
func (s *SessionStore) Restore(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	done := s.restored
	s.mu.RUnlock()
	if done {
		return nil
	}
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.restored = true
		s.mu.Unlock()
	}()

	rec, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, session.ErrPartialRecord):
		logx.Warn("Discarding incomplete persisted session")
		return s.clearStorage(ctx)
	case err != nil:
		return errx.Wrap(err, "failed to restore session", errx.TypeInternal)
	case rec == nil:
		return nil
	case !rec.Valid():
		logx.Warn("Discarding invalid persisted session")
		return s.clearStorage(ctx)
	case session.Expired(rec.AuthToken, s.now()):
		logx.Info("Persisted session has expired")
		return s.clearStorage(ctx)
	}

	var user auth.User
	if err := json.Unmarshal(rec.UserData, &user); err != nil {
		logx.Warnf("Discarding persisted session with unreadable user: %v", err)
		return s.clearStorage(ctx)
	}
	if user.Role == "" {
		user.Role = rec.UserRole
	}

	s.mu.Lock()
	s.current = auth.Session{Token: rec.AuthToken, User: &user}
	s.mu.Unlock()
	logx.Debugf("Restored session for %s", user.Email)
	return nil
}

// Begin stores a new session returned by login or register. Memory only
// changes once the triple is persisted.
func (s *SessionStore) Begin(ctx context.Context, resp *auth.AuthResponse) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user := resp.User
	if err := s.persist(ctx, resp.Token, &user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = auth.Session{Token: resp.Token, User: &user}
	s.loading = false
	s.restored = true
	s.mu.Unlock()
	return nil
}

// UpdateUser rewrites the user of the current session
func (s *SessionStore) UpdateUser(ctx context.Context, user auth.User) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	token := s.Token()
	if token == "" {
		return auth.ErrNotAuthenticated()
	}
	if err := s.persist(ctx, token, &user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current.User = &user
	s.mu.Unlock()
	return nil
}

// RotateToken replaces the token of the current session
func (s *SessionStore) RotateToken(ctx context.Context, token string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Current()
	if !cur.IsAuthenticated() {
		return auth.ErrNotAuthenticated()
	}
	if err := s.persist(ctx, token, cur.User); err != nil {
		return err
	}

	s.mu.Lock()
	s.current.Token = token
	s.mu.Unlock()
	return nil
}

// End signs out
func (s *SessionStore) End(ctx context.Context) error {
	s.writeMu.Lock()
	err := s.discard(ctx)
	ended := s.reset()
	s.writeMu.Unlock()

	if ended {
		s.notify(EndLogout)
	}
	return err
}

// Invalidate ends the session if token is still its token. Concurrent
// requests failing with the same token therefore end the session once.
// It reports whether the session was ended.
func (s *SessionStore) Invalidate(ctx context.Context, token string) bool {
	s.writeMu.Lock()
	if token == "" || token != s.Token() {
		s.writeMu.Unlock()
		return false
	}

	if err := s.discard(ctx); err != nil {
		logx.Errorf("Failed to discard persisted session: %v", err)
	}
	ended := s.reset()
	s.writeMu.Unlock()

	if ended {
		logx.Info("Session invalidated by the server")
		s.notify(EndUnauthorized)
	}
	return ended
}

// HandleUnauthorized implements httpx.UnauthorizedHandler
func (s *SessionStore) HandleUnauthorized(ctx context.Context, token string) {
	s.Invalidate(ctx, token)
}

// ExpireIfDue ends the session when its token carries a past exp claim
func (s *SessionStore) ExpireIfDue(ctx context.Context) bool {
	s.writeMu.Lock()
	token := s.Token()
	if token == "" || !session.Expired(token, s.now()) {
		s.writeMu.Unlock()
		return false
	}
	if err := s.discard(ctx); err != nil {
		logx.Errorf("Failed to discard persisted session: %v", err)
	}
	ended := s.reset()
	s.writeMu.Unlock()

	if ended {
		s.notify(EndExpired)
	}
	return ended
}

func (s *SessionStore) persist(ctx context.Context, token string, user *auth.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errx.Wrap(err, "failed to encode user", errx.TypeInternal)
	}
	rec := session.Record{AuthToken: token, UserRole: user.Role, UserData: data}
	if err := s.storage.Save(ctx, rec); err != nil {
		return auth.ErrStorageFailed().WithCause(err)
	}
	return nil
}

func (s *SessionStore) clearStorage(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return auth.ErrStorageFailed().WithCause(err)
	}
	return nil
}

// discard removes the persisted session of a session that is ending. The
// clear is tried twice; when both fail the record is overwritten with an
// empty one, which Restore discards, so the token is never restored.
func (s *SessionStore) discard(ctx context.Context) error {
	err := s.clearStorage(ctx)
	if err == nil {
		return nil
	}
	logx.Warnf("Retrying clear of persisted session: %v", err)
	if err = s.clearStorage(ctx); err == nil {
		return nil
	}
	if serr := s.storage.Save(ctx, session.Record{}); serr != nil {
		return auth.ErrStorageFailed().WithCause(errors.Join(err, serr))
	}
	logx.Warn("Persisted session could not be cleared, overwrote it instead")
	return nil
}

// reset drops the in-memory session and reports whether one existed
func (s *SessionStore) reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.current.Token != ""
	s.current = auth.Session{}
	return had
}

func (s *SessionStore) notify(reason EndReason) {
	s.mu.RLock()
	listeners := append([]func(EndReason){}, s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(reason)
	}
}
