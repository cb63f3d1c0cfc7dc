package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/metrics"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

// userKeyUseCaseWithMetrics decorates UserKeyUseCase with metrics instrumentation.
type userKeyUseCaseWithMetrics struct {
	next    UserKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewUserKeyUseCaseWithMetrics wraps a UserKeyUseCase with metrics recording.
func NewUserKeyUseCaseWithMetrics(useCase UserKeyUseCase, m metrics.BusinessMetrics) UserKeyUseCase {
	return &userKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EnsureKey records metrics for data key resolution.
func (u *userKeyUseCaseWithMetrics) EnsureKey(
	ctx context.Context,
	user *userDomain.User,
) (cryptoDomain.DataKey, error) {
	start := time.Now()
	key, err := u.next.EnsureKey(ctx, user)
	metrics.Observe(ctx, u.metrics, "crypto", "user_key_ensure", start, err)
	return key, err
}

// ProvisionMissingKeys records metrics for key backfill batches.
func (u *userKeyUseCaseWithMetrics) ProvisionMissingKeys(ctx context.Context, batchSize int) (int, error) {
	start := time.Now()
	count, err := u.next.ProvisionMissingKeys(ctx, batchSize)
	metrics.Observe(ctx, u.metrics, "crypto", "user_key_provision", start, err)
	return count, err
}
