package service

import (
	"bytes"
	"fmt"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

var probePayload = []byte("fintrack-key-size-probe")

// ProbeKeySize returns the largest key size for which alg can seal and open a payload.
//
// Sizes are tried in SupportedKeySizes order (32, 24, 16). Each candidate needs a
// working cipher and a byte-exact round trip. When no size works the result is
// ErrCryptoUnavailable, which callers treat as a fatal boot error.
func ProbeKeySize(manager AEADManager, alg cryptoDomain.Algorithm) (int, error) {
	var lastErr error
	for _, size := range cryptoDomain.SupportedKeySizes {
		if err := probe(manager, alg, size); err != nil {
			lastErr = err
			continue
		}
		return size, nil
	}
	return 0, fmt.Errorf("%w: %s: %v", cryptoDomain.ErrCryptoUnavailable, alg, lastErr)
}

func probe(manager AEADManager, alg cryptoDomain.Algorithm, size int) error {
	key := make([]byte, size)
	defer cryptoDomain.Zero(key)

	aead, err := manager.CreateCipher(key, alg)
	if err != nil {
		return err
	}

	sealed, nonce, err := aead.Encrypt(probePayload, nil)
	if err != nil {
		return err
	}

	opened, err := aead.Decrypt(sealed, nonce, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(opened, probePayload) {
		return fmt.Errorf("round trip mismatch at %d bytes", size)
	}
	return nil
}
