package auth

import (
	"context"

	"github.com/toma1133/travel-app-sub001/internal/models"
)

// Authenticator verifies who is calling. Services depend on this interface so
// the credential scheme can change without touching them.
type Authenticator interface {
	// Register creates an account for email. The credential format depends
	// on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user when the credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
