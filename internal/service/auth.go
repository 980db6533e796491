package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"potensidesa/internal/auth"
	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

const minPasswordLen = 8

// AuthService is the built-in auth provider: password login, session resolution and sign-out.
type AuthService interface {
	// Login checks credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *auth.Session, error)
	// Resolve turns a session token into a Session. It never fails: a resolution that
	// runs past ctx's deadline yields a loading session, anything else unresolvable an anonymous one.
	Resolve(ctx context.Context, token string) *auth.Session
	Logout(ctx context.Context, token string) error
	CreateUser(ctx context.Context, email, name, password, role string) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	store  auth.SessionStore
	ttl    time.Duration
	cost   int
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, store auth.SessionStore, ttl time.Duration, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{users: users, tokens: tokens, store: store, ttl: ttl, cost: bcrypt.DefaultCost, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *auth.Session, error) {
	email = normalizeEmail(email)
	var errs ValidationErrors
	if email == "" {
		errs = append(errs, &ValidationError{Field: "email", Message: "Email wajib diisi"})
	}
	if password == "" {
		errs = append(errs, &ValidationError{Field: "password", Message: "Kata sandi wajib diisi"})
	}
	if len(errs) > 0 {
		return "", nil, errs
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, &ProviderError{Op: "user lookup", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login_failed", zap.String("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(u, s.ttl)
	if err != nil {
		return "", nil, err
	}
	if err := s.store.Save(ctx, claims.ID, u.ID, s.ttl); err != nil {
		return "", nil, &ProviderError{Op: "session save", Err: err}
	}
	s.log.Info("login", zap.String("user_id", u.ID), zap.String("session_id", claims.ID))
	return token, sessionFromClaims(claims), nil
}

func (s *authService) Resolve(ctx context.Context, token string) *auth.Session {
	if token == "" {
		return auth.Anonymous()
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Anonymous()
	}
	ok, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return auth.Loading()
		}
		s.log.Warn("session_resolve_failed", zap.String("session_id", claims.ID), zap.Error(err))
		return auth.Anonymous()
	}
	if !ok {
		return auth.Anonymous()
	}
	return sessionFromClaims(claims)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.ID); err != nil {
		return &ProviderError{Op: "session delete", Err: err}
	}
	s.log.Info("logout", zap.String("user_id", claims.Subject), zap.String("session_id", claims.ID))
	return nil
}

func (s *authService) CreateUser(ctx context.Context, email, name, password, role string) (*model.User, error) {
	email = normalizeEmail(email)
	var errs ValidationErrors
	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, &ValidationError{Field: "email", Message: "Email tidak valid"})
	}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "Nama wajib diisi"})
	}
	if len(password) < minPasswordLen {
		errs = append(errs, &ValidationError{Field: "password", Message: "Kata sandi minimal 8 karakter"})
	}
	if role != model.RoleAdmin && role != model.RoleOperator {
		errs = append(errs, &ValidationError{Field: "role", Message: "Peran harus admin atau operator"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, &ProviderError{Op: "user create", Err: err}
	}
	return u, nil
}

func sessionFromClaims(c *auth.Claims) *auth.Session {
	sess := &auth.Session{State: auth.StateAuthenticated, User: c.User(), TokenID: c.ID}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time
	}
	return sess
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
