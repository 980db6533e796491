package mocks

import (
	"context"

	"potensidesa/internal/auth"
	"potensidesa/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*auth.Session), args.Error(2)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) *auth.Session {
	args := m.Called(ctx, token)
	if f, ok := args.Get(0).(func(context.Context, string) *auth.Session); ok {
		return f(ctx, token)
	}
	return args.Get(0).(*auth.Session)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) CreateUser(ctx context.Context, email, name, password, role string) (*model.User, error) {
	args := m.Called(ctx, email, name, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
