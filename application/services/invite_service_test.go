package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	memstore "reunion-backend/infrastructure/persistence/memory"
	apperrors "reunion-backend/pkg/errors"
)

func newInviteFixture() (*InviteService, *memstore.DocumentStore) {
	docs := memstore.NewDocumentStore()
	return NewInviteService(docs, 5*time.Second, zap.NewNop()), docs
}

func TestInviteService_SendBatch_MixedOutcomes(t *testing.T) {
	// Arrange
	svc, docs := newInviteFixture()
	ctx := context.Background()

	emails := []string{
		"casey@example.com",
		"not-an-email",
		"CASEY@example.com", // duplicate after normalization
		"morgan@example.com",
	}

	// Act
	results, err := svc.SendBatch(ctx, testSession(), emails, "Join us!")

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, InviteCreated, results[0].Status)
	assert.Equal(t, InviteInvalid, results[1].Status)
	assert.Equal(t, InviteDuplicate, results[2].Status)
	assert.Equal(t, InviteCreated, results[3].Status)

	// Exactly one pending record per valid unique address.
	invites, err := docs.Query(ctx, entities.CollectionInvites, queryAll())
	require.NoError(t, err)
	assert.Len(t, invites, 2)
}

func TestInviteService_SendBatch_EmptyList(t *testing.T) {
	svc, _ := newInviteFixture()

	_, err := svc.SendBatch(context.Background(), testSession(), nil, "")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestInviteService_SendBatch_Guest(t *testing.T) {
	svc, _ := newInviteFixture()

	_, err := svc.SendBatch(context.Background(), valueobjects.Session{}, []string{"a@b.co"}, "")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestInviteService_ListPending_OnlyCallers(t *testing.T) {
	// Arrange
	svc, _ := newInviteFixture()
	ctx := context.Background()

	other := valueobjects.Session{UserID: "user-2", DisplayName: "Riley", Email: "riley@example.com"}

	_, err := svc.SendBatch(ctx, testSession(), []string{"one@example.com", "two@example.com"}, "")
	require.NoError(t, err)
	_, err = svc.SendBatch(ctx, other, []string{"three@example.com"}, "")
	require.NoError(t, err)

	// Act
	invites, err := svc.ListPending(ctx, testSession(), 20, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, invites, 2)
	for _, inv := range invites {
		assert.Equal(t, testSession().UserID, inv.InviterID)
		assert.Equal(t, entities.InviteStatusPending, inv.Status)
	}
}
