package field

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/crypto/keyctx"
)

// Codec converts values of type T to and from ciphertext blobs under the data key held
// by the Key Context of ctx.
type Codec[T any] struct {
	binding *Binding
	encode  func(T) []byte
	decode  func([]byte) (T, error)
}

// NewStringCodec returns a codec for UTF-8 strings.
func NewStringCodec(b *Binding) *Codec[string] {
	return &Codec[string]{
		binding: b,
		encode:  func(s string) []byte { return []byte(s) },
		decode:  func(raw []byte) (string, error) { return string(raw), nil },
	}
}

// NewDecimalCodec returns a codec for exact decimals. The scale of the value survives the
// round trip, so 1234.50 decrypts as 1234.50 and not 1234.5.
func NewDecimalCodec(b *Binding) *Codec[decimal.Decimal] {
	return &Codec[decimal.Decimal]{
		binding: b,
		encode:  encodeDecimal,
		decode:  decodeDecimal,
	}
}

// encodeDecimal writes d so that decodeDecimal restores both its value and its exponent.
// A positive exponent is kept in scientific form: decimal.New(5, 2) is written as "5e2".
func encodeDecimal(d decimal.Decimal) []byte {
	switch exp := d.Exponent(); {
	case exp < 0:
		return []byte(d.StringFixed(-exp))
	case exp > 0:
		return []byte(d.Coefficient().String() + "e" + strconv.Itoa(int(exp)))
	default:
		return []byte(d.String())
	}
}

func decodeDecimal(raw []byte) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: stored value is not a decimal", cryptoDomain.ErrMalformedCiphertext)
	}
	return d, nil
}

// Encrypt seals v and returns the ciphertext blob.
func (c *Codec[T]) Encrypt(ctx context.Context, v T) (string, error) {
	cipher, key, err := c.prepare(ctx)
	if err != nil {
		return "", err
	}
	defer key.Zero()

	plaintext := c.encode(v)
	defer cryptoDomain.Zero(plaintext)

	return cipher.Encrypt(key, plaintext)
}

// Decrypt opens a ciphertext blob produced by Encrypt.
func (c *Codec[T]) Decrypt(ctx context.Context, blob string) (T, error) {
	var zero T

	cipher, key, err := c.prepare(ctx)
	if err != nil {
		return zero, err
	}
	defer key.Zero()

	plaintext, err := cipher.Decrypt(key, blob)
	if err != nil {
		return zero, err
	}
	defer cryptoDomain.Zero(plaintext)

	return c.decode(plaintext)
}

// ToStorage encrypts v for a nullable column. A nil v is stored as NULL.
func (c *Codec[T]) ToStorage(ctx context.Context, v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	blob, err := c.Encrypt(ctx, *v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: blob, Valid: true}, nil
}

// FromStorage decrypts a nullable column. NULL is returned as nil.
func (c *Codec[T]) FromStorage(ctx context.Context, column sql.NullString) (*T, error) {
	if !column.Valid {
		return nil, nil
	}
	v, err := c.Decrypt(ctx, column.String)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Codec[T]) prepare(ctx context.Context) (Cipher, cryptoDomain.DataKey, error) {
	cipher, err := c.binding.cipher()
	if err != nil {
		return nil, nil, err
	}
	key, err := keyctx.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cipher, key, nil
}

// Codecs bundles the codecs handed to repositories.
type Codecs struct {
	String  *Codec[string]
	Decimal *Codec[decimal.Decimal]
}

// NewCodecs builds both codecs on b.
func NewCodecs(b *Binding) Codecs {
	return Codecs{
		String:  NewStringCodec(b),
		Decimal: NewDecimalCodec(b),
	}
}
