package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Write(ctx context.Context, filename string, r io.Reader) (int64, error) {
	args := m.Called(ctx, filename, r)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader) int64); ok {
		return f(ctx, filename, r), args.Error(1)
	}
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) Remove(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}
