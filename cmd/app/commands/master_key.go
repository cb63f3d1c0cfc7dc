package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// KeeperOpener opens a KMS keeper by URI. Satisfied by service.KMSService.
type KeeperOpener interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type envVar struct {
	name, value string
}

// RunCreateMasterKey generates a random master key of keySize bytes and prints the
// settings that load it.
//
// Without kmsKeyURI MASTER_KEY is the base64 key itself. With kmsKeyURI the keeper
// encrypts the key first, MASTER_KEY is the base64 KMS ciphertext and KMS_KEY_URI is
// printed alongside. For local development use kmsKeyURI="base64key://<32-byte-base64>".
func RunCreateMasterKey(
	ctx context.Context,
	kms KeeperOpener,
	logger *slog.Logger,
	writer io.Writer,
	keySize int,
	kmsKeyURI string,
) error {
	masterKey, err := generateMasterKey(keySize)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsKeyURI == "" {
		logger.Warn("master key printed in plaintext, prefer --kms-key-uri outside development")
		return writeEnv(writer, "# Master Key Configuration",
			envVar{"MASTER_KEY", base64.StdEncoding.EncodeToString(masterKey)},
		)
	}

	sealed, err := sealWithKMS(ctx, kms, logger, kmsKeyURI, masterKey)
	if err != nil {
		return err
	}
	if err := writeEnv(writer, "# Master Key Configuration (KMS Mode)",
		envVar{"KMS_KEY_URI", kmsKeyURI},
		envVar{"MASTER_KEY", base64.StdEncoding.EncodeToString(sealed)},
	); err != nil {
		return err
	}

	logger.Info("master key created", slog.Int("key_size", keySize), slog.Bool("kms", true))
	return nil
}

func generateMasterKey(size int) ([]byte, error) {
	if !cryptoDomain.IsSupportedKeySize(size) {
		return nil, fmt.Errorf("%w: %d (valid options: 16, 24, 32)", cryptoDomain.ErrInvalidKeySize, size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

func sealWithKMS(ctx context.Context, kms KeeperOpener, logger *slog.Logger, uri string, key []byte) ([]byte, error) {
	if kms == nil {
		return nil, fmt.Errorf("%w: KMS key URI set but no KMS service configured", cryptoDomain.ErrInvalidConfiguration)
	}

	keeper, err := kms.OpenKeeper(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if err := keeper.Close(); err != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", err))
		}
	}()

	sealed, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}
	return sealed, nil
}

func writeEnv(w io.Writer, header string, vars ...envVar) error {
	lines := []string{header, "# Copy to your .env file or secrets manager", ""}
	for _, v := range vars {
		lines = append(lines, fmt.Sprintf("%s=%q", v.name, v.value))
	}
	return writeResult(w, "text", nil, lines...)
}
