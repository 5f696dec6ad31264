package authsrv

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
)

// Service runs the sign-in flows against the gateway and records their
// outcome in the session store
type Service struct {
	gateway auth.Gateway
	store   *SessionStore
}

// NewService creates a new auth service
func NewService(gateway auth.Gateway, store *SessionStore) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
	}
}

// Store returns the session store
func (s *Service) Store() *SessionStore {
	return s.store
}

// Login signs in with email and password
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (*auth.User, error) {
	if err := formx.Check(req); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Begin(ctx, resp); err != nil {
		return nil, err
	}

	logx.Infof("Signed in as %s (%s)", resp.User.Email, resp.User.Role)
	return &resp.User, nil
}

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
	if err := formx.Check(req); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Begin(ctx, resp); err != nil {
		return nil, err
	}

	logx.Infof("Registered %s as %s", resp.User.Email, resp.User.Role)
	return &resp.User, nil
}

// Logout ends the session locally
func (s *Service) Logout(ctx context.Context) error {
	return s.store.End(ctx)
}

// RefreshToken swaps the current token for a fresh one
func (s *Service) RefreshToken(ctx context.Context) error {
	token, err := s.gateway.RefreshToken(ctx)
	if err != nil {
		return err
	}
	return s.store.RotateToken(ctx, token)
}

// Me reloads the signed-in user from the backend and persists it
func (s *Service) Me(ctx context.Context) (*auth.User, error) {
	if !s.store.Current().IsAuthenticated() {
		return nil, auth.ErrNotAuthenticated()
	}

	user, err := s.gateway.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword asks the backend to send a reset link
func (s *Service) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := formx.Check(req); err != nil {
		return err
	}
	return s.gateway.ForgotPassword(ctx, req)
}

// ResetPassword sets a new password with a reset token
func (s *Service) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := formx.Check(req); err != nil {
		return err
	}
	return s.gateway.ResetPassword(ctx, req)
}
