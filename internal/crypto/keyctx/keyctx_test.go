package keyctx

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testKey(b byte) cryptoDomain.DataKey {
	return bytes.Repeat([]byte{b}, 32)
}

func TestBeginCurrent(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0xAA))
	defer scope.Close()

	key, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, testKey(0xAA), key)

	key.Zero()
	again, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, testKey(0xAA), again, "Current must hand out copies")
}

func TestBegin_CopiesInput(t *testing.T) {
	input := testKey(0x01)
	ctx, scope := Begin(context.Background(), input)
	defer scope.Close()

	input.Zero()

	key, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, testKey(0x01), key)
}

func TestCurrent_NoScope(t *testing.T) {
	key, err := Current(context.Background())
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
	assert.Nil(t, key)

	assert.ErrorIs(t, Set(context.Background(), testKey(1)), cryptoDomain.ErrKeyContextMissing)

	Clear(context.Background())
}

func TestSet_Overwrites(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0x01))
	defer scope.Close()

	require.NoError(t, Set(ctx, testKey(0x02)))

	key, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, testKey(0x02), key)
}

func TestClear(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0x01))
	defer scope.Close()

	Clear(ctx)
	_, err := Current(ctx)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)

	Clear(ctx)

	require.NoError(t, scope.Set(testKey(0x03)))
	key, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, testKey(0x03), key)
}

func TestClose_ZeroesAndIsIdempotent(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0x07))

	held := scope.key
	scope.Close()
	scope.Close()

	assert.Equal(t, make(cryptoDomain.DataKey, 32), held)
	_, err := Current(ctx)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
	assert.ErrorIs(t, scope.Set(testKey(1)), cryptoDomain.ErrKeyContextMissing)
}

func TestDerivedContextsShareScope(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0x05))
	defer scope.Close()

	child, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	key, err := Current(child)
	require.NoError(t, err)
	assert.Equal(t, testKey(0x05), key)

	scope.Close()
	_, err = Current(child)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
}

func TestRun(t *testing.T) {
	t.Run("clears after return", func(t *testing.T) {
		var inner context.Context
		err := Run(context.Background(), testKey(0x09), func(ctx context.Context) error {
			inner = ctx
			key, err := Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, testKey(0x09), key)
			return nil
		})
		require.NoError(t, err)

		_, err = Current(inner)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
	})

	t.Run("clears after error", func(t *testing.T) {
		var inner context.Context
		boom := errors.New("boom")
		err := Run(context.Background(), testKey(0x09), func(ctx context.Context) error {
			inner = ctx
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = Current(inner)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
	})

	t.Run("clears after panic", func(t *testing.T) {
		var inner context.Context
		assert.PanicsWithValue(t, "kaboom", func() {
			_ = Run(context.Background(), testKey(0x09), func(ctx context.Context) error {
				inner = ctx
				panic("kaboom")
			})
		})

		_, err := Current(inner)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyContextMissing)
	})
}

func TestCancellationClosesScope(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, scope := Begin(parent, testKey(0x0C))
	defer scope.Close()

	cancel()

	assert.Eventually(t, func() bool {
		_, err := Current(ctx)
		return errors.Is(err, cryptoDomain.ErrKeyContextMissing)
	}, time.Second, time.Millisecond)
}

func TestBegin_AlreadyCancelled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	ctx, scope := Begin(parent, testKey(0x0D))
	defer scope.Close()

	assert.Eventually(t, func() bool {
		_, err := Current(ctx)
		return err != nil
	}, time.Second, time.Millisecond)
}

func TestConcurrentUnitsOfWorkAreIsolated(t *testing.T) {
	const workers = 64

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			want := testKey(byte(i))
			return Run(context.Background(), want, func(ctx context.Context) error {
				for range 100 {
					got, err := Current(ctx)
					if err != nil {
						return err
					}
					if !bytes.Equal(want, got) {
						return errors.New("observed another unit's key")
					}
					got.Zero()
				}
				return nil
			})
		})
	}
	require.NoError(t, g.Wait())
}

func TestConcurrentReadersDuringClose(t *testing.T) {
	ctx, scope := Begin(context.Background(), testKey(0x11))

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			for range 200 {
				key, err := Current(ctx)
				if err == nil && !bytes.Equal(key, testKey(0x11)) {
					return errors.New("observed partially zeroed key")
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		scope.Close()
		return nil
	})
	require.NoError(t, g.Wait())
}
