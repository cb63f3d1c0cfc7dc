package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
	"github.com/allisson/fintrack/internal/crypto/keyctx"
	apperrors "github.com/allisson/fintrack/internal/errors"
	"github.com/allisson/fintrack/internal/httputil"
	userDomain "github.com/allisson/fintrack/internal/user/domain"
)

// TokenVerifier validates a bearer token and returns the user ID it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// UserLoader loads the user named by a verified token.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// KeyResolver resolves the user's data key, issuing one on first use.
type KeyResolver interface {
	EnsureKey(ctx context.Context, user *userDomain.User) (cryptoDomain.DataKey, error)
}

// AuthenticationMiddleware authenticates requests with a JWT in the Authorization header
// and prepares the caller's data key.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
//
// On success the user is stored in the request context (see GetUser) with its unwrapped
// data key cached on the user object for EncryptionContextMiddleware. The cached key is
// zeroed when the chain returns, also when a later middleware aborts the request.
//
// Error handling:
//   - Missing or malformed header, bad token, unknown user → 401 Unauthorized
//   - Key resolution failure → 500 Internal Server Error
func AuthenticationMiddleware(
	verifier TokenVerifier,
	users UserLoader,
	keys KeyResolver,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Debug("authentication failed: unknown user", slog.String("user_id", userID.String()))
				err = apperrors.ErrUnauthorized
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		key, err := keys.EnsureKey(ctx, user)
		if err != nil {
			logger.Error("failed to resolve user data key",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}
		key.Zero()
		defer user.ForgetDataKey()

		c.Request = c.Request.WithContext(WithUser(ctx, user))

		logger.Debug("authentication successful", slog.String("user_id", user.ID.String()))

		c.Next()
	}
}

// EncryptionContextMiddleware opens the Key Context for the rest of the request, so field
// codecs in repositories encrypt and decrypt under the authenticated user's data key.
//
// MUST be used after AuthenticationMiddleware. The scope and the key cached on the user
// are zeroed when the chain returns, including when a handler panics.
func EncryptionContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			logger.Error("encryption context middleware: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		defer user.ForgetDataKey()

		key := user.CachedDataKey()
		if key == nil {
			logger.Error("encryption context middleware: user data key not resolved",
				slog.String("user_id", user.ID.String()))
			httputil.HandleErrorGin(c, cryptoDomain.ErrKeyContextMissing, logger)
			c.Abort()
			return
		}

		ctx, scope := keyctx.Begin(c.Request.Context(), key)
		defer scope.Close()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
