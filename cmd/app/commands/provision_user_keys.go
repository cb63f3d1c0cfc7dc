package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/fintrack/internal/crypto/usecase"
)

// RunProvisionUserKeys issues data keys for every user that has none, batchSize users at
// a time, until a batch comes back short.
func RunProvisionUserKeys(
	ctx context.Context,
	userKeyUseCase cryptoUseCase.UserKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	batchSize int,
	format string,
) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	total, batches := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("provisioning interrupted after %d users: %w", total, err)
		}

		n, err := userKeyUseCase.ProvisionMissingKeys(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("failed to provision user keys after %d users: %w", total, err)
		}
		total += n
		if n > 0 {
			batches++
			logger.Info("provisioned user key batch", slog.Int("batch", batches), slog.Int("users", n))
		}
		if n < batchSize {
			break
		}
	}

	return writeResult(writer, format,
		map[string]int{"provisioned": total, "batches": batches},
		fmt.Sprintf("Provisioned data keys for %d users in %d batches", total, batches),
	)
}
