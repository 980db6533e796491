package auth

import (
	"time"

	"potensidesa/internal/model"
)

// Session is the auth context a page is rendered with.
// User is set only in StateAuthenticated.
type Session struct {
	State     State
	User      *model.User
	TokenID   string
	ExpiresAt time.Time
}

// Loading is the session of a view whose resolution did not finish in time.
func Loading() *Session { return &Session{State: StateLoading} }

// Anonymous is the session of a view without a valid login.
func Anonymous() *Session { return &Session{State: StateUnauthenticated} }

// Authenticated reports whether the session carries a user.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.User != nil
}
