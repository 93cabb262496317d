package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/auth"
)

// IdentityProvider is an in-process identity provider. It mints real
// HS256 tokens with the configured secret so the auth middleware works
// unchanged in local development and tests.
type IdentityProvider struct {
	mu        sync.Mutex
	users     map[string]*localUser // keyed by email
	generator *auth.JWTGenerator
	validator *auth.JWTValidator
}

type localUser struct {
	id          string
	email       string
	password    string
	displayName string
	attrs       entities.Document
}

// NewIdentityProvider creates a provider minting tokens with secret.
func NewIdentityProvider(secret string) *IdentityProvider {
	validator, _ := auth.NewJWTValidator(auth.JWTConfig{SecretKey: secret, Audience: "authenticated"})
	return &IdentityProvider{
		users:     make(map[string]*localUser),
		generator: auth.NewJWTGenerator(secret, "authenticated", 2*time.Hour),
		validator: validator,
	}
}

// SignUp registers a user and returns a live session.
func (p *IdentityProvider) SignUp(ctx context.Context, email, password, displayName string, attrs entities.Document) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[email]; exists {
		return valueobjects.Session{}, errors.New("user already registered")
	}

	user := &localUser{
		id:          uuid.New().String(),
		email:       email,
		password:    password,
		displayName: displayName,
		attrs:       attrs,
	}
	p.users[email] = user
	return p.session(user)
}

// SignIn exchanges credentials for a session.
func (p *IdentityProvider) SignIn(ctx context.Context, email, password string) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.users[email]
	if !ok || user.password != password {
		return valueobjects.Session{}, errors.New("invalid login credentials")
	}
	return p.session(user)
}

// SignOut is a no-op: locally minted tokens expire on their own.
func (p *IdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	return ctx.Err()
}

// SendPasswordReset pretends to mail a reset link.
func (p *IdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[email]; !ok {
		return errors.New("user not found")
	}
	return nil
}

// UserFromToken resolves an access token to its session.
func (p *IdentityProvider) UserFromToken(ctx context.Context, accessToken string) (valueobjects.Session, error) {
	if err := ctx.Err(); err != nil {
		return valueobjects.Session{}, err
	}

	claims, err := p.validator.ValidateToken(accessToken)
	if err != nil {
		return valueobjects.Session{}, err
	}

	return valueobjects.Session{
		UserID:      claims.UserID(),
		DisplayName: claims.DisplayName(),
		Email:       claims.Email,
		AccessToken: accessToken,
	}, nil
}

func (p *IdentityProvider) session(user *localUser) (valueobjects.Session, error) {
	token, err := p.generator.GenerateToken(user.id, user.email, user.displayName)
	if err != nil {
		return valueobjects.Session{}, err
	}
	return valueobjects.Session{
		UserID:      user.id,
		DisplayName: user.displayName,
		Email:       user.email,
		AccessToken: token,
	}, nil
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)
