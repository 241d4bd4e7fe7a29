// Package auth issues and verifies the bearer credentials that identify an
// actor, and hashes user passwords.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// CredentialService issues and verifies bearer credentials.
type CredentialService interface {
	// IssueCredential returns a signed credential identifying userID.
	IssueCredential(ctx context.Context, userID uuid.UUID) (string, error)

	// VerifyCredential returns the user a credential was issued for.
	// It fails with ErrInvalidToken, ErrExpiredToken or ErrTokenNotYetValid.
	VerifyCredential(ctx context.Context, token string) (uuid.UUID, error)
}
