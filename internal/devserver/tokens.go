package devserver

import (
	"errors"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by access tokens. Version is compared with the user's
// current token version so that tokens can be revoked.
type Claims struct {
	Email   kernel.Email `json:"email"`
	Role    kernel.Role  `json:"role"`
	Version int          `json:"ver"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a user ID
func (c *Claims) UserID() kernel.UserID {
	return kernel.UserID(c.Subject)
}

// TokenService signs and validates HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a token service
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "hireboard-devserver",
		now:    time.Now,
	}
}

// GenerateAccessToken issues a token for the user
func (s *TokenService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, role kernel.Role, version int) (string, error) {
	now := s.now()
	claims := Claims{
		Email:   email,
		Role:    role,
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateAccessToken parses and verifies a token
func (s *TokenService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
