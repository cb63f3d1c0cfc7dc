// Package field provides column-level codecs that encrypt sensitive values with the data
// key of the current unit of work.
//
// Codecs are constructed before the cryptographic services exist (repositories are wired
// first), so they hold a Binding that is registered once the AEAD codec is ready. Until
// then every operation fails with ErrEncryptionServiceNotInitialized.
package field

import (
	"sync/atomic"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// Cipher seals and opens byte payloads with a caller-supplied key.
// Satisfied by *service.AEADCodec.
type Cipher interface {
	Encrypt(key, plaintext []byte) (string, error)
	Decrypt(key []byte, blob string) ([]byte, error)
}

type cipherHolder struct {
	cipher Cipher
}

// Binding is the late-bound reference from field codecs to the AEAD codec.
type Binding struct {
	holder atomic.Pointer[cipherHolder]
}

// NewBinding returns an unregistered binding.
func NewBinding() *Binding {
	return &Binding{}
}

// Register binds c. Only the first call succeeds; later calls return
// ErrCodecAlreadyRegistered and leave the first cipher in place.
func (b *Binding) Register(c Cipher) error {
	if c == nil {
		return cryptoDomain.ErrEncryptionServiceNotInitialized
	}
	if !b.holder.CompareAndSwap(nil, &cipherHolder{cipher: c}) {
		return cryptoDomain.ErrCodecAlreadyRegistered
	}
	return nil
}

// Ready reports whether a cipher has been registered.
func (b *Binding) Ready() bool {
	return b.holder.Load() != nil
}

func (b *Binding) cipher() (Cipher, error) {
	h := b.holder.Load()
	if h == nil {
		return nil, cryptoDomain.ErrEncryptionServiceNotInitialized
	}
	return h.cipher, nil
}
