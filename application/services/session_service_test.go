package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reunion-backend/domain/core/valueobjects"
	memstore "reunion-backend/infrastructure/persistence/memory"
	apperrors "reunion-backend/pkg/errors"
)

func newSessionFixture() (*SessionService, *WorkspaceService) {
	identity := memstore.NewIdentityProvider("test-secret")
	workspaces := NewWorkspaceService()
	return NewSessionService(identity, workspaces, 5*time.Second, zap.NewNop()), workspaces
}

func TestSessionService_SignUpAndSignIn(t *testing.T) {
	// Arrange
	svc, _ := newSessionFixture()
	ctx := context.Background()

	// Act
	sess, err := svc.SignUp(ctx, SignUpCommand{
		Email:            "Dana@Example.com",
		Password:         "hunter2hunter2",
		DisplayName:      "Dana Whitfield",
		GraduationDecade: "1970s",
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, sess.IsGuest())
	assert.Equal(t, "dana@example.com", sess.Email)
	assert.NotEmpty(t, sess.AccessToken)

	// The same credentials sign in, case-insensitive on the address.
	again, err := svc.SignIn(ctx, "dana@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID)
}

func TestSessionService_SignUp_Validation(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()

	cases := []SignUpCommand{
		{Email: "not-an-email", Password: "longenough", DisplayName: "A"},
		{Email: "a@b.co", Password: "short", DisplayName: "A"},
		{Email: "a@b.co", Password: "longenough", DisplayName: ""},
		{Email: "a@b.co", Password: "longenough", DisplayName: "A", GraduationDecade: "1890s"},
	}

	for _, cmd := range cases {
		_, err := svc.SignUp(ctx, cmd)
		assert.True(t, apperrors.IsValidation(err), "expected validation error for %+v", cmd)
	}
}

func TestSessionService_SignIn_WrongPassword(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpCommand{
		Email:       "dana@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Dana",
	})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "dana@example.com", "wrong-password")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestSessionService_SignOut_DropsWorkspace(t *testing.T) {
	// Arrange
	svc, workspaces := newSessionFixture()
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, SignUpCommand{
		Email:       "dana@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Dana",
	})
	require.NoError(t, err)

	_, err = workspaces.StageInvite(sess.UserID, "pat@example.com")
	require.NoError(t, err)

	// Act
	err = svc.SignOut(ctx, sess)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, workspaces.Get(sess.UserID).StagedInvites)
}

func TestSessionService_SignOut_GuestNoop(t *testing.T) {
	svc, _ := newSessionFixture()

	err := svc.SignOut(context.Background(), valueobjects.Session{})

	assert.NoError(t, err)
}

func TestSessionService_SendPasswordReset(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpCommand{
		Email:       "dana@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Dana",
	})
	require.NoError(t, err)

	assert.NoError(t, svc.SendPasswordReset(ctx, "dana@example.com"))
	assert.Error(t, svc.SendPasswordReset(ctx, "not-an-email"))
}
