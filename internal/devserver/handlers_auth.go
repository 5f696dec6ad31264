package devserver

import (
	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides the HTTP handlers of every route
type Handlers struct {
	store    *Store
	tokens   *TokenService
	engine   ai.Engine
	analyzer *Analyzer
}

// NewHandlers creates a new handlers instance
func NewHandlers(store *Store, tokens *TokenService, engine ai.Engine, analyzer *Analyzer) *Handlers {
	return &Handlers{
		store:    store,
		tokens:   tokens,
		engine:   engine,
		analyzer: analyzer,
	}
}

// The auth endpoints answer with bare bodies; clients accept both shapes.

func (h *Handlers) issue(user *auth.User, version int) (*auth.AuthResponse, error) {
	token, err := h.tokens.GenerateAccessToken(user.ID, user.Email, user.Role, version)
	if err != nil {
		return nil, err
	}
	return &auth.AuthResponse{Token: token, User: *user}, nil
}

// Register creates an account and signs it in
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	req, err := bind[auth.RegisterRequest](c)
	if err != nil {
		return err
	}

	user, err := h.store.CreateAccount(req)
	if err != nil {
		return err
	}
	logx.Infof("registered %s as %s", user.Email, user.Role)

	resp, err := h.issue(user, 0)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login signs a user in
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	req, err := bind[auth.LoginRequest](c)
	if err != nil {
		return err
	}

	user, version, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}

	resp, err := h.issue(user, version)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RefreshToken issues a fresh token for the current session
// POST /api/auth/refresh-token
func (h *Handlers) RefreshToken(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	_, version, _ := h.store.User(user.ID)

	resp, err := h.issue(user, version)
	if err != nil {
		return err
	}
	return c.JSON(auth.RefreshTokenResponse{Token: resp.Token})
}

// ForgotPassword issues a reset token. The answer is the same for unknown
// emails.
// POST /api/auth/forgot-password
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	req, err := bind[auth.ForgotPasswordRequest](c)
	if err != nil {
		return err
	}

	if token := h.store.IssueResetToken(req.Email); token != "" {
		// No mail in development; the token is only logged
		logx.Infof("password reset token for %s: %s", req.Email, token)
	}
	return c.JSON(auth.MessageResponse{Message: "If the email exists, a reset link has been sent"})
}

// ResetPassword sets a new password with a reset token
// POST /api/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	req, err := bind[auth.ResetPasswordRequest](c)
	if err != nil {
		return err
	}
	if err := h.store.ResetPassword(req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(auth.MessageResponse{Message: "Password updated"})
}

// Me returns the signed-in user
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
