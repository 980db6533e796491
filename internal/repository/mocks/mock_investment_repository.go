package mocks

import (
	"context"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) Create(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) Update(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) FindByID(ctx context.Context, id string) (*model.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Investment], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Investment]), args.Error(1)
}

func (m *MockInvestmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
