package domain

import (
	"github.com/allisson/fintrack/internal/errors"
)

// Boot-time errors. These abort startup and never reach an HTTP caller.
var (
	// ErrInvalidConfiguration indicates the master key value is missing, blank or
	// cannot be decoded under the configured policy.
	ErrInvalidConfiguration = errors.Wrap(errors.ErrInvalidInput, "invalid encryption configuration")

	// ErrUnsupportedAlgorithm indicates the configured AEAD algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrCryptoUnavailable indicates the runtime cannot provide the AEAD primitive
	// for any supported key size.
	ErrCryptoUnavailable = errors.Wrap(errors.ErrInternal, "cryptographic backend unavailable")
)

// Per-request errors. All of them wrap errors.ErrInternal so handlers answer with a
// generic server error and never echo ciphertext or key details.
var (
	// ErrInvalidKeySize indicates a key whose length the selected algorithm does not accept.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInternal, "invalid key size")

	// ErrKeyContextMissing indicates a field codec ran outside of an authenticated
	// unit of work. This is an integration bug, not a user error.
	ErrKeyContextMissing = errors.Wrap(errors.ErrInternal, "no data key in context")

	// ErrDecryptionFailed indicates the authentication tag did not verify: wrong key,
	// tampered bytes or a truncated payload.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInternal, "decryption failed")

	// ErrMalformedCiphertext indicates the stored value is not a ciphertext blob at all
	// (not base64, or shorter than a nonce).
	ErrMalformedCiphertext = errors.Wrap(errors.ErrInternal, "malformed ciphertext")

	// ErrKeyUnwrapFailure indicates the stored wrapped data key does not open under the
	// current master key. Fatal for that user's encrypted data.
	ErrKeyUnwrapFailure = errors.Wrap(errors.ErrInternal, "failed to unwrap user data key")

	// ErrEncryptionServiceNotInitialized indicates a field codec was invoked before its
	// binding was registered.
	ErrEncryptionServiceNotInitialized = errors.Wrap(errors.ErrInternal, "encryption service not initialized")

	// ErrCodecAlreadyRegistered indicates a second registration attempt on a binding.
	ErrCodecAlreadyRegistered = errors.Wrap(errors.ErrInternal, "encryption service already registered")
)
