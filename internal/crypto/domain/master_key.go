package domain

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// KMSKeeper decrypts a KMS-wrapped master key. Satisfied by *secrets.Keeper from gocloud.dev.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KeyEncoding records which decoding branch produced the master key material.
type KeyEncoding string

const (
	// KeyEncodingBase64 means the configured value was valid standard base64.
	KeyEncodingBase64 KeyEncoding = "base64"

	// KeyEncodingRaw means base64 decoding failed and the UTF-8 bytes of the value were used.
	KeyEncodingRaw KeyEncoding = "raw"

	// KeyEncodingKMS means the value was KMS ciphertext opened by a keeper.
	KeyEncodingKMS KeyEncoding = "kms"
)

// MasterKey is the server-wide key that wraps every per-user data key.
//
// It is derived once at boot and never mutated afterwards, so it is safe to share
// between goroutines without locking. Only the per-user key service reads Key.
type MasterKey struct {
	Key []byte
}

// Close zeroes the key material. Call it at process shutdown.
func (m *MasterKey) Close() {
	if m == nil {
		return
	}
	Zero(m.Key)
	m.Key = nil
}

// DecodeMasterKey converts the configured master key value into key material of at
// most keySize bytes.
//
// Decoding is an ordered fallback: standard base64 first; when that fails and strict
// is false, the raw UTF-8 bytes of the trimmed value are used instead. The branch
// taken is returned so the caller can warn about it. In strict mode a value that is
// not valid base64 fails with ErrInvalidConfiguration.
//
// The decoded bytes are then normalized: a length other than 16, 24 or 32 is replaced by
// its SHA-256 digest, and anything longer than keySize is truncated to keySize.
func DecodeMasterKey(value string, keySize int, strict bool) (*MasterKey, KeyEncoding, error) {
	if !IsSupportedKeySize(keySize) {
		return nil, "", fmt.Errorf("%w: target key size %d", ErrInvalidKeySize, keySize)
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, "", fmt.Errorf("%w: master key value must be provided", ErrInvalidConfiguration)
	}

	encoding := KeyEncodingBase64
	material, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		if strict {
			return nil, "", fmt.Errorf("%w: master key is not valid base64", ErrInvalidConfiguration)
		}
		encoding = KeyEncodingRaw
		material = []byte(trimmed)
	}

	return &MasterKey{Key: NormalizeKey(material, keySize)}, encoding, nil
}

// NormalizeKey applies the master key length rules to material and zeroes it.
// The returned slice never aliases material.
func NormalizeKey(material []byte, keySize int) []byte {
	defer Zero(material)

	candidate := material
	if !IsSupportedKeySize(len(candidate)) {
		digest := sha256.Sum256(material)
		defer Zero(digest[:])
		candidate = digest[:]
	}

	n := min(len(candidate), keySize)
	out := make([]byte, n)
	copy(out, candidate[:n])
	return out
}
