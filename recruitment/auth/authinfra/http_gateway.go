package authinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
)

// HTTPGateway implements auth.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new auth gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ auth.Gateway = (*HTTPGateway)(nil)

// Register - POST /api/auth/register
func (g *HTTPGateway) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	var resp auth.AuthResponse
	if err := g.client.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login - POST /api/auth/login
func (g *HTTPGateway) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	var resp auth.AuthResponse
	if err := g.client.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken - POST /api/auth/refresh-token
func (g *HTTPGateway) RefreshToken(ctx context.Context) (string, error) {
	var resp auth.RefreshTokenResponse
	if err := g.client.Post(ctx, "/api/auth/refresh-token", nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ForgotPassword - POST /api/auth/forgot-password
func (g *HTTPGateway) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	return g.client.Post(ctx, "/api/auth/forgot-password", req, nil)
}

// ResetPassword - POST /api/auth/reset-password
func (g *HTTPGateway) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	return g.client.Post(ctx, "/api/auth/reset-password", req, nil)
}

// Me - GET /api/auth/me
func (g *HTTPGateway) Me(ctx context.Context) (*auth.User, error) {
	var user auth.User
	if err := g.client.Get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
