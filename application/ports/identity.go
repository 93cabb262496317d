package ports

import (
	"context"

	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
)

// IdentityProvider is the hosted-auth port. Sessions are explicit values
// returned from sign-in and handed to every operation needing the caller's
// identity.
type IdentityProvider interface {
	// SignUp registers a user and returns the new session. Extra attributes
	// (graduation decade and the like) travel as provider user metadata.
	SignUp(ctx context.Context, email, password, displayName string, attrs entities.Document) (valueobjects.Session, error)

	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (valueobjects.Session, error)

	// SignOut revokes the session behind the access token.
	SignOut(ctx context.Context, accessToken string) error

	// SendPasswordReset asks the provider to mail a reset link.
	SendPasswordReset(ctx context.Context, email string) error

	// UserFromToken resolves an access token to the session it represents.
	UserFromToken(ctx context.Context, accessToken string) (valueobjects.Session, error)
}
