package mocks

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/service/auth"
)

// MockCredentialService implements auth.CredentialService for testing.
// By default it issues "token-<uuid>" and verifies the same format.
type MockCredentialService struct {
	IssueCredentialFn  func(ctx context.Context, userID uuid.UUID) (string, error)
	VerifyCredentialFn func(ctx context.Context, token string) (uuid.UUID, error)
}

var _ auth.CredentialService = (*MockCredentialService)(nil)

const tokenPrefix = "token-"

// TokenFor returns the credential the default mock issues for userID.
func TokenFor(userID uuid.UUID) string {
	return tokenPrefix + userID.String()
}

func (m *MockCredentialService) IssueCredential(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.IssueCredentialFn != nil {
		return m.IssueCredentialFn(ctx, userID)
	}
	return TokenFor(userID), nil
}

func (m *MockCredentialService) VerifyCredential(ctx context.Context, token string) (uuid.UUID, error) {
	if m.VerifyCredentialFn != nil {
		return m.VerifyCredentialFn(ctx, token)
	}
	id, err := uuid.Parse(strings.TrimPrefix(token, tokenPrefix))
	if err != nil || !strings.HasPrefix(token, tokenPrefix) {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return id, nil
}

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)

	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}
