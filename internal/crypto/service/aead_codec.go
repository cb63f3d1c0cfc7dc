package service

import (
	"encoding/base64"
	"errors"
	"fmt"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// AEADCodec turns byte payloads into self-contained ciphertext blobs.
//
// Blob layout before base64 (standard encoding):
//
//	nonce (12 bytes) || sealed payload (ciphertext || 16-byte tag)
//
// The codec never pads, stretches or truncates keys. Key length problems surface as
// ErrInvalidKeySize.
type AEADCodec struct {
	manager AEADManager
	alg     cryptoDomain.Algorithm
}

// NewAEADCodec creates a codec sealing with alg through manager.
func NewAEADCodec(manager AEADManager, alg cryptoDomain.Algorithm) *AEADCodec {
	return &AEADCodec{manager: manager, alg: alg}
}

// Algorithm returns the algorithm the codec seals with.
func (c *AEADCodec) Algorithm() cryptoDomain.Algorithm {
	return c.alg
}

// Encrypt seals plaintext under key with a fresh random nonce and returns the base64 blob.
func (c *AEADCodec) Encrypt(key, plaintext []byte) (string, error) {
	aead, err := c.cipher(key)
	if err != nil {
		return "", err
	}

	sealed, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrCryptoUnavailable, err)
	}

	blob := make([]byte, 0, len(nonce)+len(sealed))
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt.
//
// Returns ErrMalformedCiphertext when blob is not base64 or is shorter than a nonce, and
// ErrDecryptionFailed when the tag does not verify (wrong key, tampering, truncation).
func (c *AEADCodec) Decrypt(key []byte, blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", cryptoDomain.ErrMalformedCiphertext)
	}
	if len(raw) < cryptoDomain.NonceSize {
		return nil, fmt.Errorf(
			"%w: blob is %d bytes, shorter than the %d byte nonce",
			cryptoDomain.ErrMalformedCiphertext,
			len(raw),
			cryptoDomain.NonceSize,
		)
	}

	aead, err := c.cipher(key)
	if err != nil {
		return nil, err
	}

	nonce, sealed := raw[:cryptoDomain.NonceSize], raw[cryptoDomain.NonceSize:]
	plaintext, err := aead.Decrypt(sealed, nonce, nil)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func (c *AEADCodec) cipher(key []byte) (AEAD, error) {
	aead, err := c.manager.CreateCipher(key, c.alg)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrInvalidKeySize) || errors.Is(err, cryptoDomain.ErrUnsupportedAlgorithm) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrCryptoUnavailable, err)
	}
	return aead, nil
}
