package auth

import (
	"context"
	"errors"
)

// UserContext is the authenticated caller attached to a request context.
type UserContext struct {
	UserID      string
	Email       string
	DisplayName string
	AccessToken string
}

type contextKey string

const userContextKey contextKey = "user"

// SetUserInContext attaches the authenticated user to a context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the authenticated user from a context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("no user in context")
	}
	return user, nil
}
