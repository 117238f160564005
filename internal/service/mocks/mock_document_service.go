package mocks

import (
	"context"
	"io"

	"docview/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(ctx context.Context) ([]model.FileInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileInfo), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, filename string) error {
	args := m.Called(ctx, r, filename)
	return args.Error(0)
}

func (m *MockDocumentService) Preview(ctx context.Context, filename string) (*model.Preview, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preview), args.Error(1)
}

func (m *MockDocumentService) ExtractText(ctx context.Context, filename string) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, filename, content string) error {
	args := m.Called(ctx, filename, content)
	return args.Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}
