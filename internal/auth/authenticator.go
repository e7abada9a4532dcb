package auth

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// Authenticator registers and signs in ledger users. AuthService depends on
// it rather than on PasswordAuthenticator so other credential types can be
// added without touching the service.
//
// Implementations normalize emails, return ErrEmailExists for a taken email
// and ErrInvalidCredentials for any failed sign-in, without revealing whether
// the email is registered.
type Authenticator interface {
	// Register creates a user with an empty group and friend list.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user identified by email and credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential is acceptable for Register.
	ValidateCredential(credential string) error
}
