package repository

import (
	"context"
	"errors"

	"potensidesa/internal/model"
)

// ErrNotFound is returned by every implementation when a lookup by key matches nothing.
var ErrNotFound = errors.New("record not found")

// UserRepository persists accounts of the built-in auth provider.
type UserRepository interface {
	// Create inserts a new user and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// FindByEmail returns the user with the given (lower-cased) email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// InvestmentRepository persists investment opportunities in the document database.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *model.Investment) (*model.Investment, error)
	Update(ctx context.Context, inv *model.Investment) (*model.Investment, error)
	FindByID(ctx context.Context, id string) (*model.Investment, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Investment], error)
	// Delete removes an investment by ID. It returns nil if the record did not exist.
	Delete(ctx context.Context, id string) error
}

// LocationRepository persists village potential submissions and their review state.
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) (*model.Location, error)
	// CountByStatus aggregates the number of locations per review status.
	CountByStatus(ctx context.Context) (map[string]int, error)
	ListByStatus(ctx context.Context, status string, pq PageQuery) ([]model.Location, error)
	ListBySubmitter(ctx context.Context, userID string, pq PageQuery) ([]model.Location, error)
	// UpdateStatus moves a pending location to status and records the reviewer.
	// ErrNotFound covers both a missing and an already reviewed location.
	UpdateStatus(ctx context.Context, id, status, reviewerID string) error
}

// DesaRepository reads village reference data.
type DesaRepository interface {
	List(ctx context.Context) ([]model.Desa, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
