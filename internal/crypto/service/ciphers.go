package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// AEADCipher seals and opens payloads with one key under one algorithm. Both supported
// algorithms use a 12-byte nonce drawn from crypto/rand per call and a 16-byte tag, so
// blobs have the same layout whichever is configured. Safe for concurrent use.
type AEADCipher struct {
	alg  cryptoDomain.Algorithm
	aead cipher.AEAD
}

type cipherConstructor func(key []byte) (cipher.AEAD, error)

var cipherConstructors = map[cryptoDomain.Algorithm]cipherConstructor{
	cryptoDomain.AESGCM:   newGCM,
	cryptoDomain.ChaCha20: newChaCha20Poly1305,
}

// AES-128, AES-192 or AES-256 depending on the key length.
func newGCM(key []byte) (cipher.AEAD, error) {
	if !cryptoDomain.IsSupportedKeySize(len(key)) {
		return nil, fmt.Errorf("%w: aes-gcm got %d bytes", cryptoDomain.ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

func newChaCha20Poly1305(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: chacha20-poly1305 requires %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, chacha20poly1305.KeySize, len(key))
	}
	return chacha20poly1305.New(key)
}

func newAEADCipher(alg cryptoDomain.Algorithm, key []byte) (*AEADCipher, error) {
	construct, ok := cipherConstructors[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, alg)
	}
	aead, err := construct(key)
	if err != nil {
		return nil, err
	}
	return &AEADCipher{alg: alg, aead: aead}, nil
}

// NewAESGCM returns an AES-GCM cipher. The key must be 16, 24 or 32 bytes.
func NewAESGCM(key []byte) (*AEADCipher, error) {
	return newAEADCipher(cryptoDomain.AESGCM, key)
}

// NewChaCha20Poly1305 returns a ChaCha20-Poly1305 cipher. The key must be 32 bytes.
func NewChaCha20Poly1305(key []byte) (*AEADCipher, error) {
	return newAEADCipher(cryptoDomain.ChaCha20, key)
}

// Algorithm names the cipher.
func (c *AEADCipher) Algorithm() cryptoDomain.Algorithm {
	return c.alg
}

// Encrypt seals plaintext and returns the ciphertext (tag appended) and the random nonce.
func (c *AEADCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// Decrypt verifies the tag and opens ciphertext. Every failure, a nonce of the wrong
// length included, is ErrDecryptionFailed with no plaintext.
func (c *AEADCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("%w: unexpected nonce length %d", cryptoDomain.ErrDecryptionFailed, len(nonce))
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// AEADManagerService builds ciphers by algorithm name.
type AEADManagerService struct{}

// NewAEADManager returns an AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher fails with ErrUnsupportedAlgorithm for unknown algorithms and with
// ErrInvalidKeySize when alg does not accept len(key).
func (*AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	c, err := newAEADCipher(alg, key)
	if err != nil {
		return nil, err
	}
	return c, nil
}
