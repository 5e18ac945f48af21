package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockUseCase[In, Out any] struct {
	mock.Mock
}

func (m *MockUseCase[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	var out Out
	if v := args.Get(0); v != nil {
		out = v.(Out)
	}
	return out, args.Error(1)
}

type MockAction[In any] struct {
	mock.Mock
}

func (m *MockAction[In]) Handle(ctx context.Context, in In) error {
	return m.Called(ctx, in).Error(0)
}
