package mocks

import (
	"context"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLocationRepository) ListByStatus(ctx context.Context, status string, pq repository.PageQuery) ([]model.Location, error) {
	args := m.Called(ctx, status, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationRepository) ListBySubmitter(ctx context.Context, userID string, pq repository.PageQuery) ([]model.Location, error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationRepository) UpdateStatus(ctx context.Context, id, status, reviewerID string) error {
	args := m.Called(ctx, id, status, reviewerID)
	return args.Error(0)
}

type MockDesaRepository struct {
	mock.Mock
}

func (m *MockDesaRepository) List(ctx context.Context) ([]model.Desa, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Desa), args.Error(1)
}
