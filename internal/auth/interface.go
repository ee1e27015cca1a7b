package auth

import "context"

// Provider is the external identity provider that owns coach credentials.
type Provider interface {
	// CreateAccount registers a new email/password account and returns its uid.
	CreateAccount(ctx context.Context, email, password string) (string, error)
	// Authenticate checks credentials and returns the account they belong to.
	Authenticate(ctx context.Context, email, password string) (Account, error)
	// SendPasswordReset asks the provider to mail a reset link.
	SendPasswordReset(ctx context.Context, email string) error
}
