package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndValidate(t *testing.T) {
	generator := NewJWTGenerator("secret", "authenticated", time.Hour)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Audience: "authenticated"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "dana@example.com", "Dana Whitfield")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, "Dana Whitfield", claims.DisplayName())
}

func TestValidateToken_StripsBearerPrefix(t *testing.T) {
	generator := NewJWTGenerator("secret", "authenticated", time.Hour)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Audience: "authenticated"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "dana@example.com", "Dana")
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	generator := NewJWTGenerator("secret", "authenticated", time.Hour)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "other-secret", Audience: "authenticated"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "dana@example.com", "Dana")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_Expired(t *testing.T) {
	generator := NewJWTGenerator("secret", "authenticated", -time.Minute)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Audience: "authenticated"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "dana@example.com", "Dana")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	generator := NewJWTGenerator("secret", "anon", time.Hour)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Audience: "authenticated"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "dana@example.com", "Dana")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Missing(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret"})
	require.NoError(t, err)

	_, err = validator.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestClaims_DisplayNameFallsBackToEmail(t *testing.T) {
	c := &Claims{Email: "dana@example.com"}
	assert.Equal(t, "dana", c.DisplayName())
}
