package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims are the claims carried by a Supabase access token. UserMetadata
// holds the display name and any sign-up attributes.
type Claims struct {
	Email        string                 `json:"email"`
	Role         string                 `json:"role"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// DisplayName returns the display name from user metadata, falling back to
// the email's local part.
func (c *Claims) DisplayName() string {
	if name, ok := c.UserMetadata["display_name"].(string); ok && name != "" {
		return name
	}
	if at := strings.IndexByte(c.Email, '@'); at > 0 {
		return c.Email[:at]
	}
	return c.Email
}

// JWTConfig holds token validation configuration. Supabase signs access
// tokens with the project JWT secret using HS256.
type JWTConfig struct {
	SecretKey string
	Audience  string // Supabase uses "authenticated" for signed-in users
}

// JWTValidator validates Supabase access tokens locally, avoiding a
// round-trip to the auth provider on every request.
type JWTValidator struct {
	secretKey []byte
	audience  string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key required")
	}
	return &JWTValidator{
		secretKey: []byte(config.SecretKey),
		audience:  config.Audience,
	}, nil
}

// ValidateToken validates a JWT token and returns the claims
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}
		return v.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.audience != "" && !contains(claims.Audience, v.audience) {
		return nil, fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing user ID", ErrInvalidClaims)
	}

	return claims, nil
}

// JWTGenerator mints tokens in the same shape the provider issues. Used by
// the in-memory identity provider and in tests.
type JWTGenerator struct {
	secretKey []byte
	audience  string
	expiry    time.Duration
}

// NewJWTGenerator creates a new token generator.
func NewJWTGenerator(secretKey, audience string, expiry time.Duration) *JWTGenerator {
	return &JWTGenerator{
		secretKey: []byte(secretKey),
		audience:  audience,
		expiry:    expiry,
	}
}

// GenerateToken mints an access token for a user.
func (g *JWTGenerator) GenerateToken(userID, email, displayName string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  "authenticated",
		UserMetadata: map[string]interface{}{
			"display_name": displayName,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{g.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secretKey)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
