package service

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

type MockAEADManager struct {
	mock.Mock
}

func (m *MockAEADManager) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	args := m.Called(key, alg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(AEAD), args.Error(1)
}

func newTestCodec(alg cryptoDomain.Algorithm) *AEADCodec {
	return NewAEADCodec(NewAEADManager(), alg)
}

func TestAEADCodec_RoundTrip(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			codec := newTestCodec(alg)
			key := randomKey(t, 32)

			payloads := [][]byte{
				[]byte(""),
				[]byte("Lunch with team"),
				[]byte("Café ☕ 日本語"),
				make([]byte, 4096),
			}
			for _, p := range payloads {
				blob, err := codec.Encrypt(key, p)
				require.NoError(t, err)

				raw, err := base64.StdEncoding.DecodeString(blob)
				require.NoError(t, err)
				assert.Len(t, raw, cryptoDomain.NonceSize+len(p)+cryptoDomain.TagSize)

				out, err := codec.Decrypt(key, blob)
				require.NoError(t, err)
				assert.Equal(t, len(p), len(out))
				assert.Equal(t, string(p), string(out))
			}
		})
	}
}

func TestAEADCodec_NonceFreshness(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)
	key := randomKey(t, 32)

	const trials = 1000
	blobs := make(map[string]struct{}, trials)
	nonces := make(map[string]struct{}, trials)

	for range trials {
		blob, err := codec.Encrypt(key, []byte("1234.50"))
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(blob)
		require.NoError(t, err)

		blobs[blob] = struct{}{}
		nonces[string(raw[:cryptoDomain.NonceSize])] = struct{}{}
	}

	assert.Len(t, blobs, trials)
	assert.Len(t, nonces, trials)
}

func TestAEADCodec_WrongKey(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)
	keyA := randomKey(t, 32)
	keyB := randomKey(t, 32)

	blob, err := codec.Encrypt(keyA, []byte("salary"))
	require.NoError(t, err)

	out, err := codec.Decrypt(keyB, blob)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	assert.Nil(t, out)
}

func TestAEADCodec_TamperDetection(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)
	key := randomKey(t, 32)

	blob, err := codec.Encrypt(key, []byte("Monthly rent"))
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x80

		out, err := codec.Decrypt(key, base64.StdEncoding.EncodeToString(tampered))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, "byte %d", i)
		assert.Nil(t, out, "byte %d", i)
	}
}

func TestAEADCodec_Truncated(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)
	key := randomKey(t, 32)

	blob, err := codec.Encrypt(key, []byte("Monthly rent"))
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	t.Run("tag cut off", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(raw[:len(raw)-1])
		_, err := codec.Decrypt(key, short)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("nonce only", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(raw[:cryptoDomain.NonceSize])
		_, err := codec.Decrypt(key, short)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("shorter than nonce", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(raw[:cryptoDomain.NonceSize-1])
		_, err := codec.Decrypt(key, short)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext)
	})
}

func TestAEADCodec_Malformed(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)
	key := randomKey(t, 32)

	for _, blob := range []string{"", "not base64 at all!", "AAAA"} {
		out, err := codec.Decrypt(key, blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext, "blob %q", blob)
		assert.Nil(t, out)
	}
}

func TestAEADCodec_InvalidKeySize(t *testing.T) {
	codec := newTestCodec(cryptoDomain.AESGCM)

	_, err := codec.Encrypt(make([]byte, 20), []byte("x"))
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
}

func TestAEADCodec_BackendFailure(t *testing.T) {
	manager := &MockAEADManager{}
	manager.On("CreateCipher", mock.Anything, cryptoDomain.AESGCM).
		Return(nil, errors.New("backend exploded"))

	codec := NewAEADCodec(manager, cryptoDomain.AESGCM)
	_, err := codec.Encrypt(make([]byte, 32), []byte("x"))
	assert.ErrorIs(t, err, cryptoDomain.ErrCryptoUnavailable)

	manager.AssertExpectations(t)
}

func TestAEADCodec_Algorithm(t *testing.T) {
	assert.Equal(t, cryptoDomain.ChaCha20, newTestCodec(cryptoDomain.ChaCha20).Algorithm())
}
