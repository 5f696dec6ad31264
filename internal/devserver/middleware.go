package devserver

import (
	"strings"

	iamauth "github.com/Abraxas-365/hireboard/pkg/iam/auth"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/gofiber/fiber/v2"
)

const localUser = "user"

// AuthMiddleware resolves bearer tokens to users
type AuthMiddleware struct {
	tokens *TokenService
	store  *Store
}

// NewAuthMiddleware creates the middleware
func NewAuthMiddleware(tokens *TokenService, store *Store) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, store: store}
}

// Authenticate requires a valid, unrevoked bearer token
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return auth.ErrNotAuthenticated()
		}
		user, err := m.resolve(header)
		if err != nil {
			return err
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// Optional resolves the token when one is sent. A bad token still fails.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		user, err := m.resolve(header)
		if err != nil {
			return err
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// RequireScope checks the user's role grants scope. Use after Authenticate.
func (m *AuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return auth.ErrNotAuthenticated()
		}
		if !iamauth.RoleCan(user.Role, scope) {
			return ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(header string) (*auth.User, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, auth.ErrNotAuthenticated().WithDetail("reason", "invalid authorization format")
	}

	claims, err := m.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, auth.ErrSessionExpired()
	}

	// A version behind the account's means the token was revoked
	user, version, found := m.store.User(claims.UserID())
	if !found || version != claims.Version {
		return nil, auth.ErrSessionExpired()
	}
	return user, nil
}

// currentUser returns the user set by Authenticate or Optional
func currentUser(c *fiber.Ctx) (*auth.User, bool) {
	user, ok := c.Locals(localUser).(*auth.User)
	return user, ok && user != nil
}

// mustUser is currentUser for routes behind Authenticate
func mustUser(c *fiber.Ctx) (*auth.User, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, auth.ErrNotAuthenticated()
	}
	return user, nil
}
