package auth

import (
	"context"

	"github.com/mmynk/splitpay/internal/models"
)

// Authenticator is the caller-identity collaborator. The ledger engine
// never verifies identities itself; it trusts that every identifier it is
// handed passed through this layer first.
//
// The abstraction keeps the RPC services independent of the credential
// mechanism (passwords today, passkeys or OAuth later).
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
