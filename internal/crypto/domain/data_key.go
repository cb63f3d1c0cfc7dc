package domain

import (
	"log/slog"
)

const redacted = "[REDACTED]"

// DataKey is the plaintext form of a per-user data key.
//
// It lives only in memory: on the user object attached to an authenticated
// principal and inside a key context scope. String, GoString and LogValue are
// redacted so the bytes never end up in logs or formatted errors.
type DataKey []byte

// Clone returns an independent copy of the key.
func (k DataKey) Clone() DataKey {
	if k == nil {
		return nil
	}
	out := make(DataKey, len(k))
	copy(out, k)
	return out
}

// Zero overwrites the key material in place.
func (k DataKey) Zero() {
	Zero(k)
}

// Len returns the key length in bytes.
func (k DataKey) Len() int {
	return len(k)
}

func (k DataKey) String() string {
	return redacted
}

func (k DataKey) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer.
func (k DataKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	clear(b)
}
