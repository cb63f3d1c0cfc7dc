// Package service provides the cryptographic services behind per-user field encryption:
// AEAD ciphers, the ciphertext blob codec, the key size probe, master key loading and
// per-user data key issuance.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// AEAD is a keyed cipher. Encrypt draws a fresh random nonce per call and returns it
// next to the sealed bytes (ciphertext followed by the tag).
type AEAD interface {
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager keys a cipher for one operation.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Codec seals byte payloads into self-contained text blobs and opens them again.
type Codec interface {
	Encrypt(key, plaintext []byte) (string, error)
	Decrypt(key []byte, blob string) ([]byte, error)
}

// KMSService opens gocloud.dev keepers for KMS-wrapped master keys.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
