package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"potensidesa/internal/model"
)

var (
	ErrSecretRequired = errors.New("jwt secret is required")
	ErrInvalidToken   = errors.New("invalid session token")
)

const issuer = "potensidesa"

// Claims is the signed payload of a session cookie. ID (jti) is the session id kept in the store.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// User rebuilds the user the token was issued for.
func (c *Claims) User() *model.User {
	return &model.User{ID: c.Subject, Email: c.Email, Name: c.Name, Role: c.Role}
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for u valid for ttl and returns it with its claims.
func (m *TokenManager) Issue(u *model.User, ttl time.Duration) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies signature, issuer and expiry. Every failure maps to ErrInvalidToken.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
