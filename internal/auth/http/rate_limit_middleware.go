package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// limiterStore holds one token bucket per key with periodic eviction of idle buckets.
type limiterStore[K comparable] struct {
	limiters sync.Map // map[K]*limiterEntry
	rps      float64
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newLimiterStore[K comparable](ctx context.Context, rps float64, burst int) *limiterStore[K] {
	s := &limiterStore[K]{rps: rps, burst: burst}
	go s.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTTL)
	return s
}

func (s *limiterStore[K]) getLimiter(key K) *rate.Limiter {
	now := time.Now()
	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	val, loaded := s.limiters.LoadOrStore(key, entry)
	if loaded {
		entry = val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// evictIdle removes buckets not touched since threshold.
func (s *limiterStore[K]) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

func (s *limiterStore[K]) cleanupStale(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-ttl))
		}
	}
}

// allow reports whether a request keyed by key may proceed. On rejection it writes the 429
// response with a Retry-After header and aborts the chain.
func (s *limiterStore[K]) allow(c *gin.Context, key K, message string, logger *slog.Logger) bool {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	reservation.Cancel()

	logger.Debug("rate limit exceeded",
		slog.Any("key", key),
		slog.Int("retry_after", retryAfter))

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": message,
	})
	c.Abort()
	return false
}

// RateLimitMiddleware enforces a per-user token bucket on authenticated routes.
//
// MUST be used after AuthenticationMiddleware. Idle buckets are evicted by a background
// goroutine that stops when ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](ctx, rps, burst)

	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !store.allow(c, user.ID, "Too many requests. Please retry after the specified delay.", logger) {
			return
		}
		c.Next()
	}
}

// IPRateLimitMiddleware enforces a per-IP token bucket on unauthenticated routes such as
// registration. The client address comes from c.ClientIP, which honours the proxy headers
// trusted by the engine.
func IPRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](ctx, rps, burst)

	return func(c *gin.Context) {
		if !store.allow(c, c.ClientIP(), "Too many requests from this IP. Please retry after the specified delay.", logger) {
			return
		}
		c.Next()
	}
}
