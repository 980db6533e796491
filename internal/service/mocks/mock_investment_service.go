package mocks

import (
	"context"

	"potensidesa/internal/model"
	"potensidesa/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockInvestmentService struct {
	mock.Mock
}

func (m *MockInvestmentService) Get(ctx context.Context, id string) (*model.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentService) List(ctx context.Context, limit, offset int) (*service.InvestmentListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvestmentListResult), args.Error(1)
}

func (m *MockInvestmentService) Save(ctx context.Context, userID string, form *service.InvestmentForm, image *service.UploadInput) (*model.Investment, error) {
	args := m.Called(ctx, userID, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
