// Package mocks provides testify mocks for the KMS side of master key handling.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// MockKMSService mocks the keeper opener used by the master key loader and the
// create-master-key command.
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, keyURI)
	keeper, _ := args.Get(0).(cryptoDomain.KMSKeeper)
	return keeper, args.Error(1)
}

// MockKMSKeeper mocks a secrets keeper.
type MockKMSKeeper struct {
	mock.Mock
}

var _ cryptoDomain.KMSKeeper = (*MockKMSKeeper)(nil)

func bytesResult(args mock.Arguments) ([]byte, error) {
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	return bytesResult(m.Called(ctx, plaintext))
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return bytesResult(m.Called(ctx, ciphertext))
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

// OpensKeeper wires s to hand out keeper for uri and expects the keeper to be closed.
func (s *MockKMSService) OpensKeeper(ctx any, uri string, keeper *MockKMSKeeper) {
	s.On("OpenKeeper", ctx, uri).Return(keeper, nil).Once()
	keeper.On("Close").Return(nil).Once()
}
