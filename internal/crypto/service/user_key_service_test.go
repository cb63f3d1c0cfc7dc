package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

func newTestUserKeyService(t *testing.T, masterKey []byte) *UserKeyService {
	t.Helper()
	svc, err := NewUserKeyService(
		newTestCodec(cryptoDomain.AESGCM),
		&cryptoDomain.MasterKey{Key: masterKey},
		32,
	)
	require.NoError(t, err)
	return svc
}

func TestNewUserKeyService(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)

	_, err := NewUserKeyService(codec, nil, 32)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidConfiguration)

	_, err = NewUserKeyService(codec, &cryptoDomain.MasterKey{}, 32)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidConfiguration)

	_, err = NewUserKeyService(codec, &cryptoDomain.MasterKey{Key: make([]byte, 32)}, 20)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)

	svc, err := NewUserKeyService(codec, &cryptoDomain.MasterKey{Key: make([]byte, 32)}, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, svc.KeySize())
}

func TestUserKeyService_IssueAndUnwrap(t *testing.T) {
	svc := newTestUserKeyService(t, make([]byte, 32))

	key, wrapped, err := svc.IssueFreshKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)
	assert.NotEmpty(t, wrapped)

	unwrapped, err := svc.Unwrap(wrapped)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(key, unwrapped))

	again, err := svc.Unwrap(wrapped)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(key, again))
}

func TestUserKeyService_IssueFreshKey_Distinct(t *testing.T) {
	svc := newTestUserKeyService(t, randomKey(t, 32))

	seen := make(map[string]struct{})
	for range 64 {
		key, _, err := svc.IssueFreshKey()
		require.NoError(t, err)
		seen[string(key)] = struct{}{}
	}
	assert.Len(t, seen, 64)
}

func TestUserKeyService_Unwrap_WrongMasterKey(t *testing.T) {
	issuer := newTestUserKeyService(t, randomKey(t, 32))
	other := newTestUserKeyService(t, randomKey(t, 32))

	_, wrapped, err := issuer.IssueFreshKey()
	require.NoError(t, err)

	key, err := other.Unwrap(wrapped)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnwrapFailure)
	assert.Nil(t, key)
}

func TestUserKeyService_Unwrap_Malformed(t *testing.T) {
	svc := newTestUserKeyService(t, randomKey(t, 32))

	_, err := svc.Unwrap("not base64!!")
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnwrapFailure)
}

func TestUserKeyService_Unwrap_WrongLength(t *testing.T) {
	masterKey := randomKey(t, 32)
	svc := newTestUserKeyService(t, masterKey)

	wrapped, err := newTestCodec(cryptoDomain.AESGCM).Encrypt(masterKey, make([]byte, 16))
	require.NoError(t, err)

	_, err = svc.Unwrap(wrapped)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnwrapFailure)
}

func TestUserKeyService_Close(t *testing.T) {
	masterKey := &cryptoDomain.MasterKey{Key: randomKey(t, 32)}
	raw := masterKey.Key
	svc, err := NewUserKeyService(newTestCodec(cryptoDomain.AESGCM), masterKey, 32)
	require.NoError(t, err)

	svc.Close()
	assert.Nil(t, masterKey.Key)
	assert.Equal(t, make([]byte, 32), raw)
}
