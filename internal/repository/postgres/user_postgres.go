package postgres

import (
	"context"
	"database/sql"
	"errors"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, name, role, password_hash, created_at`

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Email,
		u.Name,
		u.Role,
		u.PasswordHash,
		u.CreatedAt,
	)
	return scanUser(row)
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a single user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
