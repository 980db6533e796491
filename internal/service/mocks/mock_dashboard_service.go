package mocks

import (
	"context"

	"potensidesa/internal/model"
	"potensidesa/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) ApprovalStats(ctx context.Context) (model.ApprovalStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ApprovalStats), args.Error(1)
}

func (m *MockDashboardService) PendingApprovals(ctx context.Context, limit int) ([]model.Location, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockDashboardService) ApprovedLocations(ctx context.Context, limit int) ([]model.Location, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockDashboardService) UserLocations(ctx context.Context, userID string, limit int) ([]model.Location, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockDashboardService) Desa(ctx context.Context) ([]model.Desa, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Desa), args.Error(1)
}

func (m *MockDashboardService) Overview(ctx context.Context, user *model.User) *service.Overview {
	args := m.Called(ctx, user)
	return args.Get(0).(*service.Overview)
}

func (m *MockDashboardService) Review(ctx context.Context, reviewer *model.User, locationID string, approve bool) error {
	args := m.Called(ctx, reviewer, locationID, approve)
	return args.Error(0)
}

func (m *MockDashboardService) SubmitLocation(ctx context.Context, userID string, form *service.LocationForm, image *service.UploadInput) (*model.Location, error) {
	args := m.Called(ctx, userID, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}
