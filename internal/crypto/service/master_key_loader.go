package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

// MasterKeyConfig carries the external master key representation.
type MasterKeyConfig struct {
	// Value is base64 (or raw) key material, or base64 KMS ciphertext when KMSKeyURI is set.
	Value string
	// KMSKeyURI, when set, names the keeper that unwraps Value.
	KMSKeyURI string
	// Strict disables the raw-bytes fallback for values that are not valid base64.
	Strict bool
}

// MasterKeyLoader derives the process master key once at boot.
type MasterKeyLoader struct {
	manager    AEADManager
	alg        cryptoDomain.Algorithm
	kmsService KMSService
	logger     *slog.Logger
}

// NewMasterKeyLoader creates a loader. kmsService may be nil when KMS is not used.
func NewMasterKeyLoader(
	manager AEADManager,
	alg cryptoDomain.Algorithm,
	kmsService KMSService,
	logger *slog.Logger,
) *MasterKeyLoader {
	return &MasterKeyLoader{
		manager:    manager,
		alg:        alg,
		kmsService: kmsService,
		logger:     logger,
	}
}

// Load decodes and normalizes the master key to at most keySize bytes and checks that the
// configured algorithm accepts it. Every failure is fatal for startup.
func (l *MasterKeyLoader) Load(
	ctx context.Context,
	cfg MasterKeyConfig,
	keySize int,
) (*cryptoDomain.MasterKey, error) {
	var (
		masterKey *cryptoDomain.MasterKey
		encoding  cryptoDomain.KeyEncoding
		err       error
	)

	if cfg.KMSKeyURI != "" {
		masterKey, err = l.loadFromKMS(ctx, cfg, keySize)
		encoding = cryptoDomain.KeyEncodingKMS
	} else {
		masterKey, encoding, err = cryptoDomain.DecodeMasterKey(cfg.Value, keySize, cfg.Strict)
	}
	if err != nil {
		return nil, err
	}

	if encoding == cryptoDomain.KeyEncodingRaw {
		l.logger.Warn(
			"master key is not valid base64, using raw bytes of the configured value",
			slog.Int("key_size", len(masterKey.Key)),
		)
	}

	if _, err := l.manager.CreateCipher(masterKey.Key, l.alg); err != nil {
		masterKey.Close()
		return nil, fmt.Errorf("%w: master key unusable with %s: %v", cryptoDomain.ErrInvalidConfiguration, l.alg, err)
	}

	l.logger.Info("master key loaded",
		slog.String("encoding", string(encoding)),
		slog.String("algorithm", string(l.alg)),
		slog.Int("key_size", len(masterKey.Key)),
	)

	return masterKey, nil
}

func (l *MasterKeyLoader) loadFromKMS(
	ctx context.Context,
	cfg MasterKeyConfig,
	keySize int,
) (*cryptoDomain.MasterKey, error) {
	value := strings.TrimSpace(cfg.Value)
	if value == "" {
		return nil, fmt.Errorf("%w: master key value must be provided", cryptoDomain.ErrInvalidConfiguration)
	}
	if l.kmsService == nil {
		return nil, fmt.Errorf("%w: KMS key URI set but no KMS service configured", cryptoDomain.ErrInvalidConfiguration)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: KMS-wrapped master key is not valid base64", cryptoDomain.ErrInvalidConfiguration)
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidConfiguration, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			l.logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt master key with KMS: %v", cryptoDomain.ErrInvalidConfiguration, err)
	}

	return &cryptoDomain.MasterKey{Key: cryptoDomain.NormalizeKey(plaintext, keySize)}, nil
}
