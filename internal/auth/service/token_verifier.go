// Package service provides bearer token verification.
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/fintrack/internal/auth/domain"
)

// TokenVerifier validates HS256 JWTs whose subject is a user ID.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenVerifier creates a verifier for tokens signed with secret. When issuer is not
// empty the iss claim must match it.
func NewTokenVerifier(secret, issuer string, leeway time.Duration) (*TokenVerifier, error) {
	if len(secret) < authDomain.MinSecretLength {
		return nil, authDomain.ErrTokenSecretTooShort
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify checks signature and claims of raw and returns the user ID in its subject.
func (v *TokenVerifier) Verify(raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", authDomain.ErrInvalidToken)
	}
	return userID, nil
}
