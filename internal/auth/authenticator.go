package auth

import (
	"context"

	"github.com/atcommodities/erp/internal/models"
)

// Authenticator verifies back-office operators.
// Implementations decide what the credential is (password today).
type Authenticator interface {
	// Register creates a new operator account.
	Register(ctx context.Context, email, displayName, credential string) (*models.Operator, error)

	// Authenticate verifies the credential and returns the operator if it matches.
	Authenticate(ctx context.Context, email, credential string) (*models.Operator, error)

	// ValidateCredential checks the credential meets the implementation's rules.
	ValidateCredential(credential string) error
}
