package mocks

import (
	"context"
	"io"

	"docview/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) List(ctx context.Context) ([]model.FileInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileInfo), args.Error(1)
}

func (m *MockStorage) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	args := m.Called(ctx, name, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ReadAll(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) WriteText(ctx context.Context, name string, content string) error {
	args := m.Called(ctx, name, content)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStorage) RemoveDir(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStorage) SaveImage(folder, name string, data []byte) (string, error) {
	args := m.Called(folder, name, data)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Exists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Root() string {
	args := m.Called()
	return args.String(0)
}
