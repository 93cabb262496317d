package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/gotrue-go/types"
	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
)

// IdentityProvider implements the identity port over the project's gotrue
// service. The gotrue SDK carries no per-call context; the wrapping
// services bound each call with a deadline and map expiry onto the timeout
// error kind.
type IdentityProvider struct {
	clients *Clients
	logger  *zap.Logger
}

// NewIdentityProvider creates a gotrue-backed identity provider.
func NewIdentityProvider(clients *Clients, logger *zap.Logger) *IdentityProvider {
	return &IdentityProvider{clients: clients, logger: logger}
}

// SignUp registers a user; the display name and extra attributes travel as
// user metadata. The follow-up sign-in returns the live session.
func (p *IdentityProvider) SignUp(ctx context.Context, email, password, displayName string, attrs entities.Document) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	data := make(map[string]interface{}, len(attrs)+1)
	for k, v := range attrs {
		data[k] = v
	}
	data["display_name"] = displayName

	if _, err := p.clients.API.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     data,
	}); err != nil {
		return valueobjects.Session{}, fmt.Errorf("sign up: %w", err)
	}

	return p.SignIn(ctx, email, password)
}

// SignIn exchanges credentials for a session.
func (p *IdentityProvider) SignIn(ctx context.Context, email, password string) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	resp, err := p.clients.API.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return valueobjects.Session{}, fmt.Errorf("sign in: %w", err)
	}

	return sessionFromUser(resp.User, resp.AccessToken), nil
}

// SignOut revokes the session behind the access token.
func (p *IdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.clients.API.Auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// SendPasswordReset asks gotrue to mail a reset link.
func (p *IdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.clients.API.Auth.Recover(types.RecoverRequest{Email: email}); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	return nil
}

// UserFromToken resolves an access token to the session it represents.
func (p *IdentityProvider) UserFromToken(ctx context.Context, accessToken string) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	resp, err := p.clients.API.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return valueobjects.Session{}, fmt.Errorf("resolve token: %w", err)
	}

	return sessionFromUser(resp.User, accessToken), nil
}

func sessionFromUser(user types.User, accessToken string) valueobjects.Session {
	displayName, _ := user.UserMetadata["display_name"].(string)
	if displayName == "" {
		displayName = user.Email
	}
	return valueobjects.Session{
		UserID:      user.ID.String(),
		DisplayName: displayName,
		Email:       user.Email,
		AccessToken: accessToken,
	}
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)
