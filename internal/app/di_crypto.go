package app

import (
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	cryptoService "github.com/allisson/fintrack/internal/crypto/service"
	cryptoUseCase "github.com/allisson/fintrack/internal/crypto/usecase"
)

type cryptoComponents struct {
	aeadManager    lazy[cryptoService.AEADManager]
	kmsService     lazy[cryptoService.KMSService]
	algorithm      lazy[cryptoDomain.Algorithm]
	aeadCodec      lazy[*cryptoService.AEADCodec]
	userKeyService lazy[*cryptoService.UserKeyService]
	userKeyUseCase lazy[cryptoUseCase.UserKeyUseCase]
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	manager, _ := c.crypto.aeadManager.get(func() (cryptoService.AEADManager, error) {
		return cryptoService.NewAEADManager(), nil
	})
	return manager
}

// KMSService returns the KMS service used to unwrap a KMS-protected master key.
func (c *Container) KMSService() cryptoService.KMSService {
	kms, _ := c.crypto.kmsService.get(func() (cryptoService.KMSService, error) {
		return cryptoService.NewKMSService(), nil
	})
	return kms
}

// Algorithm returns the configured AEAD algorithm.
func (c *Container) Algorithm() (cryptoDomain.Algorithm, error) {
	return c.crypto.algorithm.get(func() (cryptoDomain.Algorithm, error) {
		alg, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
		if err != nil {
			return "", fmt.Errorf("invalid ENCRYPTION_ALGORITHM %q: %w", c.config.EncryptionAlgorithm, err)
		}
		return alg, nil
	})
}

// AEADCodec returns the codec that seals field values and wraps data keys.
// It is not registered with the field binding until the master key has loaded.
func (c *Container) AEADCodec() (*cryptoService.AEADCodec, error) {
	return c.crypto.aeadCodec.get(func() (*cryptoService.AEADCodec, error) {
		alg, err := c.Algorithm()
		if err != nil {
			return nil, err
		}
		return cryptoService.NewAEADCodec(c.AEADManager(), alg), nil
	})
}

// UserKeyService returns the service holding the master key.
//
// Building it probes the key size, loads the master key and registers the AEAD codec with
// the field binding. Any failure here is fatal for boot.
func (c *Container) UserKeyService() (*cryptoService.UserKeyService, error) {
	return c.crypto.userKeyService.get(c.initUserKeyService)
}

// UserKeyUseCase returns the per-user key use case.
func (c *Container) UserKeyUseCase() (cryptoUseCase.UserKeyUseCase, error) {
	return c.crypto.userKeyUseCase.get(c.initUserKeyUseCase)
}

func (c *Container) initUserKeyService() (*cryptoService.UserKeyService, error) {
	alg, err := c.Algorithm()
	if err != nil {
		return nil, err
	}

	codec, err := c.AEADCodec()
	if err != nil {
		return nil, err
	}

	keySize, err := cryptoService.ProbeKeySize(c.AEADManager(), alg)
	if err != nil {
		return nil, fmt.Errorf("failed to select key size: %w", err)
	}

	var kms cryptoService.KMSService
	if c.config.KMSKeyURI != "" {
		kms = c.KMSService()
	}

	loader := cryptoService.NewMasterKeyLoader(c.AEADManager(), alg, kms, c.Logger())
	masterKey, err := loader.Load(c.ctx, cryptoService.MasterKeyConfig{
		Value:     c.config.MasterKey,
		KMSKeyURI: c.config.KMSKeyURI,
		Strict:    c.config.MasterKeyStrict,
	}, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}

	keyService, err := cryptoService.NewUserKeyService(codec, masterKey, keySize)
	if err != nil {
		masterKey.Close()
		return nil, fmt.Errorf("failed to create user key service: %w", err)
	}

	if err := c.binding.Register(codec); err != nil {
		keyService.Close()
		return nil, fmt.Errorf("failed to register field codec: %w", err)
	}

	c.Logger().Info(
		"encryption ready",
		slog.String("algorithm", string(alg)),
		slog.Int("key_size", keySize),
		slog.Bool("kms", c.config.KMSKeyURI != ""),
	)

	return keyService, nil
}

func (c *Container) initUserKeyUseCase() (cryptoUseCase.UserKeyUseCase, error) {
	repo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user key use case: %w", err)
	}

	keyService, err := c.UserKeyService()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user key use case: %w", err)
	}

	useCase := cryptoUseCase.NewUserKeyUseCase(repo, keyService)
	return cryptoUseCase.NewUserKeyUseCaseWithMetrics(useCase, bm), nil
}
