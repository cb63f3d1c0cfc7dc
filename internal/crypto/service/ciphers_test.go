package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

func randomKey(t *testing.T, size int) []byte {
	t.Helper()
	key := make([]byte, size)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager()

	tests := []struct {
		alg     cryptoDomain.Algorithm
		keySize int
		wantErr error
	}{
		{alg: cryptoDomain.AESGCM, keySize: 32},
		{alg: cryptoDomain.AESGCM, keySize: 24},
		{alg: cryptoDomain.AESGCM, keySize: 16},
		{alg: cryptoDomain.AESGCM, keySize: 20, wantErr: cryptoDomain.ErrInvalidKeySize},
		{alg: cryptoDomain.AESGCM, keySize: 64, wantErr: cryptoDomain.ErrInvalidKeySize},
		{alg: cryptoDomain.AESGCM, keySize: 0, wantErr: cryptoDomain.ErrInvalidKeySize},
		{alg: cryptoDomain.ChaCha20, keySize: 32},
		{alg: cryptoDomain.ChaCha20, keySize: 24, wantErr: cryptoDomain.ErrInvalidKeySize},
		{alg: cryptoDomain.ChaCha20, keySize: 16, wantErr: cryptoDomain.ErrInvalidKeySize},
		{alg: cryptoDomain.Algorithm("rot13"), keySize: 32, wantErr: cryptoDomain.ErrUnsupportedAlgorithm},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			aead, err := manager.CreateCipher(randomKey(t, tt.keySize), tt.alg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "size %d", tt.keySize)
				assert.Nil(t, aead)
				return
			}
			require.NoError(t, err)
			require.IsType(t, &AEADCipher{}, aead)
			assert.Equal(t, tt.alg, aead.(*AEADCipher).Algorithm())
		})
	}
}

func TestAEADCipher(t *testing.T) {
	ciphers := map[string]func([]byte) (*AEADCipher, error){
		"aes-gcm":           NewAESGCM,
		"chacha20-poly1305": NewChaCha20Poly1305,
	}

	for name, newCipher := range ciphers {
		t.Run(name, func(t *testing.T) {
			c, err := newCipher(randomKey(t, 32))
			require.NoError(t, err)

			t.Run("round trip with aad", func(t *testing.T) {
				ct, nonce, err := c.Encrypt([]byte("groceries"), []byte("aad"))
				require.NoError(t, err)
				assert.Len(t, nonce, cryptoDomain.NonceSize)
				assert.Len(t, ct, len("groceries")+cryptoDomain.TagSize)

				pt, err := c.Decrypt(ct, nonce, []byte("aad"))
				require.NoError(t, err)
				assert.Equal(t, []byte("groceries"), pt)

				_, err = c.Decrypt(ct, nonce, []byte("other"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("empty plaintext", func(t *testing.T) {
				ct, nonce, err := c.Encrypt([]byte{}, nil)
				require.NoError(t, err)
				assert.Len(t, ct, cryptoDomain.TagSize)

				pt, err := c.Decrypt(ct, nonce, nil)
				require.NoError(t, err)
				assert.Empty(t, pt)
			})

			t.Run("fresh nonce per call", func(t *testing.T) {
				ct1, n1, err := c.Encrypt([]byte("same"), nil)
				require.NoError(t, err)
				ct2, n2, err := c.Encrypt([]byte("same"), nil)
				require.NoError(t, err)
				assert.False(t, bytes.Equal(n1, n2))
				assert.False(t, bytes.Equal(ct1, ct2))
			})

			t.Run("tampered ciphertext", func(t *testing.T) {
				ct, nonce, err := c.Encrypt([]byte("salary"), nil)
				require.NoError(t, err)
				ct[0] ^= 0x01

				pt, err := c.Decrypt(ct, nonce, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
				assert.Nil(t, pt)
			})

			t.Run("short nonce", func(t *testing.T) {
				ct, _, err := c.Encrypt([]byte("salary"), nil)
				require.NoError(t, err)

				_, err = c.Decrypt(ct, []byte{1, 2, 3}, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("wrong key", func(t *testing.T) {
				other, err := newCipher(randomKey(t, 32))
				require.NoError(t, err)

				ct, nonce, err := c.Encrypt([]byte("rent"), nil)
				require.NoError(t, err)

				pt, err := other.Decrypt(ct, nonce, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
				assert.Nil(t, pt)
			})
		})
	}
}

func TestNewAESGCM_KeySizes(t *testing.T) {
	for _, size := range cryptoDomain.SupportedKeySizes {
		c, err := NewAESGCM(randomKey(t, size))
		require.NoError(t, err, "size %d", size)

		ct, nonce, err := c.Encrypt([]byte("coffee beans"), nil)
		require.NoError(t, err)
		pt, err := c.Decrypt(ct, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte("coffee beans"), pt)
	}

	for _, size := range []int{0, 8, 31, 33} {
		c, err := NewAESGCM(randomKey(t, size))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "size %d", size)
		assert.Nil(t, c)
	}
}
