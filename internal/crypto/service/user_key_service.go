package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// UserKeyService issues, wraps and unwraps per-user data keys under the master key.
//
// It is the only holder of the master key; no method returns it or anything derived
// from it other than wrapped data keys.
type UserKeyService struct {
	codec     Codec
	masterKey *cryptoDomain.MasterKey
	keySize   int
}

// NewUserKeyService creates the service. keySize is the size selected by ProbeKeySize and
// determines the length of every data key it issues.
func NewUserKeyService(codec Codec, masterKey *cryptoDomain.MasterKey, keySize int) (*UserKeyService, error) {
	if masterKey == nil || len(masterKey.Key) == 0 {
		return nil, fmt.Errorf("%w: master key not loaded", cryptoDomain.ErrInvalidConfiguration)
	}
	if !cryptoDomain.IsSupportedKeySize(keySize) {
		return nil, fmt.Errorf("%w: data key size %d", cryptoDomain.ErrInvalidKeySize, keySize)
	}
	return &UserKeyService{codec: codec, masterKey: masterKey, keySize: keySize}, nil
}

// KeySize returns the data key length in bytes.
func (s *UserKeyService) KeySize() int {
	return s.keySize
}

// IssueFreshKey generates a random data key and wraps it under the master key.
// The caller persists the wrapped form against the user record.
func (s *UserKeyService) IssueFreshKey() (cryptoDomain.DataKey, string, error) {
	key := make(cryptoDomain.DataKey, s.keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, "", fmt.Errorf("%w: failed to generate data key: %v", cryptoDomain.ErrCryptoUnavailable, err)
	}

	wrapped, err := s.codec.Encrypt(s.masterKey.Key, key)
	if err != nil {
		key.Zero()
		return nil, "", fmt.Errorf("failed to wrap data key: %w", err)
	}

	return key, wrapped, nil
}

// Unwrap opens a wrapped data key. Any decryption problem, or a plaintext of the wrong
// length, is reported as ErrKeyUnwrapFailure.
func (s *UserKeyService) Unwrap(wrapped string) (cryptoDomain.DataKey, error) {
	raw, err := s.codec.Decrypt(s.masterKey.Key, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyUnwrapFailure, err)
	}
	if len(raw) != s.keySize {
		cryptoDomain.Zero(raw)
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes, want %d", cryptoDomain.ErrKeyUnwrapFailure, len(raw), s.keySize)
	}
	return cryptoDomain.DataKey(raw), nil
}

// Close zeroes the master key.
func (s *UserKeyService) Close() {
	s.masterKey.Close()
}
