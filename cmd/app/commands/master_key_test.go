package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	cryptoService "github.com/allisson/fintrack/internal/crypto/service"
	"github.com/allisson/fintrack/internal/crypto/service/mocks"
)

var masterKeyLine = regexp.MustCompile(`MASTER_KEY="([^"]+)"`)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func printedMasterKey(t *testing.T, out string) string {
	t.Helper()
	match := masterKeyLine.FindStringSubmatch(out)
	require.Len(t, match, 2, "no MASTER_KEY line in %q", out)
	return match[1]
}

func TestRunCreateMasterKey_Plaintext(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		var out bytes.Buffer
		require.NoError(t, RunCreateMasterKey(context.Background(), nil, quietLogger(), &out, size, ""))

		raw, err := base64.StdEncoding.DecodeString(printedMasterKey(t, out.String()))
		require.NoError(t, err)
		assert.Len(t, raw, size)
		assert.NotContains(t, out.String(), "KMS_KEY_URI")
	}
}

func TestRunCreateMasterKey_FreshKeyEachRun(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, RunCreateMasterKey(context.Background(), nil, quietLogger(), &first, 32, ""))
	require.NoError(t, RunCreateMasterKey(context.Background(), nil, quietLogger(), &second, 32, ""))
	assert.NotEqual(t, printedMasterKey(t, first.String()), printedMasterKey(t, second.String()))
}

func TestRunCreateMasterKey_KMS(t *testing.T) {
	ctx := context.Background()
	const uri = "awskms://alias/fintrack"

	t.Run("prints sealed key and uri", func(t *testing.T) {
		kms, keeper := &mocks.MockKMSService{}, &mocks.MockKMSKeeper{}
		kms.OpensKeeper(ctx, uri, keeper)
		keeper.On("Encrypt", ctx, mock.MatchedBy(func(b []byte) bool { return len(b) == 32 })).
			Return([]byte("sealed"), nil)

		var out bytes.Buffer
		require.NoError(t, RunCreateMasterKey(ctx, kms, quietLogger(), &out, 32, uri))

		assert.Contains(t, out.String(), `KMS_KEY_URI="`+uri+`"`)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("sealed")), printedMasterKey(t, out.String()))
		kms.AssertExpectations(t)
		keeper.AssertExpectations(t)
	})

	t.Run("no service", func(t *testing.T) {
		err := RunCreateMasterKey(ctx, nil, quietLogger(), &bytes.Buffer{}, 32, uri)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidConfiguration)
	})

	t.Run("open fails", func(t *testing.T) {
		kms := &mocks.MockKMSService{}
		kms.On("OpenKeeper", ctx, uri).Return(nil, errors.New("no credentials"))

		err := RunCreateMasterKey(ctx, kms, quietLogger(), &bytes.Buffer{}, 32, uri)
		assert.ErrorContains(t, err, "failed to open KMS keeper")
	})

	t.Run("encrypt fails before anything is printed", func(t *testing.T) {
		kms, keeper := &mocks.MockKMSService{}, &mocks.MockKMSKeeper{}
		kms.OpensKeeper(ctx, uri, keeper)
		keeper.On("Encrypt", ctx, mock.Anything).Return(nil, errors.New("denied"))

		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, kms, quietLogger(), &out, 32, uri)
		assert.ErrorContains(t, err, "failed to encrypt master key with KMS")
		assert.Empty(t, out.String())
		keeper.AssertExpectations(t)
	})
}

func TestRunCreateMasterKey_LoadsBackThroughLocalKeeper(t *testing.T) {
	ctx := context.Background()
	uri := "base64key://" + base64.URLEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 32))

	var out bytes.Buffer
	require.NoError(t, RunCreateMasterKey(ctx, cryptoService.NewKMSService(), quietLogger(), &out, 32, uri))

	loader := cryptoService.NewMasterKeyLoader(
		cryptoService.NewAEADManager(), cryptoDomain.AESGCM, cryptoService.NewKMSService(), quietLogger(),
	)
	masterKey, err := loader.Load(ctx, cryptoService.MasterKeyConfig{Value: printedMasterKey(t, out.String()), KMSKeyURI: uri}, 32)
	require.NoError(t, err)
	defer masterKey.Close()
	assert.Len(t, masterKey.Key, 32)
}

func TestRunCreateMasterKey_InvalidSize(t *testing.T) {
	for _, size := range []int{0, 20, 64} {
		err := RunCreateMasterKey(context.Background(), nil, quietLogger(), &bytes.Buffer{}, size, "")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	}
}
