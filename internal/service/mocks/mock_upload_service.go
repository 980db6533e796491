package mocks

import (
	"context"

	"potensidesa/internal/model"
	"potensidesa/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, in service.UploadInput) (*model.UploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

func (m *MockUploadService) Owns(url string) bool {
	args := m.Called(url)
	return args.Bool(0)
}
