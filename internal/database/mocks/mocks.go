// Package mocks provides a testify mock of database.TxManager.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/fintrack/internal/database"
)

// MockTxManager records WithTx calls. Unless an error is configured for the call, it runs
// fn directly with the caller's context.
type MockTxManager struct {
	mock.Mock
}

var _ database.TxManager = (*MockTxManager)(nil)

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := m.Called(ctx, fn).Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// ExpectTx expects one WithTx call on ctx that runs its function.
func (m *MockTxManager) ExpectTx(ctx any) *mock.Call {
	return m.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
}
