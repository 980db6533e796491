package model

import "time"

// Roles recognised by the dashboard.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is an account of the built-in auth provider.
// PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may review location submissions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
