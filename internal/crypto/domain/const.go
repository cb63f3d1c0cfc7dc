// Package domain defines the envelope-encryption types shared by the crypto
// services, the key context and the field codecs.
package domain

// Algorithm represents the AEAD algorithm used to seal field values and wrapped data keys.
//
// Both supported algorithms produce a 12-byte nonce and a 16-byte authentication tag,
// so the ciphertext blob layout is identical regardless of the algorithm selected.
type Algorithm string

const (
	// AESGCM is AES in Galois/Counter Mode. Accepts 128, 192 and 256-bit keys.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Accepts 256-bit keys only.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Key sizes in bytes, largest first. The capability probe walks this order.
const (
	KeySize256 = 32
	KeySize192 = 24
	KeySize128 = 16
)

// SupportedKeySizes lists the AEAD key sizes in the order they are probed at boot.
var SupportedKeySizes = []int{KeySize256, KeySize192, KeySize128}

const (
	// NonceSize is the length of the random nonce prefixed to every ciphertext blob.
	NonceSize = 12

	// TagSize is the length of the authentication tag appended by the AEAD seal.
	TagSize = 16
)

// IsSupportedKeySize reports whether n is one of the AEAD key sizes.
func IsSupportedKeySize(n int) bool {
	for _, size := range SupportedKeySizes {
		if n == size {
			return true
		}
	}
	return false
}

// ParseAlgorithm converts a configuration value to an Algorithm.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(value) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
