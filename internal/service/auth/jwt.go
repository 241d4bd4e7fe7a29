package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/config"
	"github.com/akssingh0102/task-management/internal/platform/logger"
)

// MinSecretLength is the shortest accepted HMAC signing key.
const MinSecretLength = 32

// hmacCredentialService signs credentials as HS256 JWTs.
type hmacCredentialService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
	clockSkew  time.Duration
}

type credentialClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

var _ CredentialService = (*hmacCredentialService)(nil)

// Option configures the credential service.
type Option func(*hmacCredentialService)

// WithClock replaces time.Now when issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *hmacCredentialService) { s.timeFunc = now }
}

// NewCredentialService creates a JWT credential service from cfg.
func NewCredentialService(cfg config.AuthConfig, opts ...Option) (CredentialService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	s := &hmacCredentialService{
		signingKey: []byte(cfg.JWTSecret),
		lifetime:   cfg.TokenLifetime(),
		timeFunc:   time.Now,
		clockSkew:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueCredential implements CredentialService.
func (s *hmacCredentialService) IssueCredential(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.timeFunc()
	claims := credentialClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign credential",
			"error", err,
			"user_id", userID)
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// VerifyCredential implements CredentialService.
func (s *hmacCredentialService) VerifyCredential(ctx context.Context, token string) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parsed, err := jwt.ParseWithClaims(
		token,
		&credentialClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("credential expired", "error", err)
			return uuid.Nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("credential not yet valid", "error", err)
			return uuid.Nil, ErrTokenNotYetValid
		default:
			log.Debug("credential rejected", "error", err, "error_type", fmt.Sprintf("%T", err))
			return uuid.Nil, ErrInvalidToken
		}
	}

	claims, ok := parsed.Claims.(*credentialClaims)
	if !ok || !parsed.Valid || claims.UserID == uuid.Nil {
		log.Debug("credential has invalid claims")
		return uuid.Nil, ErrInvalidToken
	}
	return claims.UserID, nil
}
