package services

import (
	"context"
	"sync"
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

func newReactionFixture(t *testing.T) (*ReactionService, *memstore.DocumentStore, string) {
	t.Helper()

	docs := memstore.NewDocumentStore()
	svc := NewReactionService(docs, 5*time.Second, zap.NewNop())

	fields := entities.NewMemoryFields("Graduation day", "1970s", "We threw our caps.", "story", testSession(), time.Now())
	memoryID, err := docs.Create(context.Background(), entities.CollectionMemories, fields)
	require.NoError(t, err)

	return svc, docs, memoryID
}

func reactionCount(t *testing.T, docs *memstore.DocumentStore, memoryID string, kind valueobjects.ReactionKind) int {
	t.Helper()

	doc, err := docs.Get(context.Background(), entities.CollectionMemories, memoryID)
	require.NoError(t, err)

	switch v := doc[kind.CounterField()].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func TestReactionService_Toggle_OnThenOff(t *testing.T) {
	// Arrange
	svc, docs, memoryID := newReactionFixture(t)
	ctx := context.Background()
	sess := testSession()

	// Act: first toggle adds.
	result, err := svc.Toggle(ctx, sess, memoryID, valueobjects.ReactionHeart)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, result.State)
	assert.Equal(t, 1, reactionCount(t, docs, memoryID, valueobjects.ReactionHeart))

	// Act: second toggle of the same kind removes.
	result, err = svc.Toggle(ctx, sess, memoryID, valueobjects.ReactionHeart)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, result.State)
	assert.Equal(t, 0, reactionCount(t, docs, memoryID, valueobjects.ReactionHeart))

	// No join record left behind.
	joins, err := docs.Query(ctx, entities.CollectionReactions, queryAll())
	require.NoError(t, err)
	assert.Empty(t, joins)
}

func TestReactionService_Toggle_SwitchKind(t *testing.T) {
	// Arrange
	svc, docs, memoryID := newReactionFixture(t)
	ctx := context.Background()
	sess := testSession()

	_, err := svc.Toggle(ctx, sess, memoryID, valueobjects.ReactionHeart)
	require.NoError(t, err)

	// Act
	result, err := svc.Toggle(ctx, sess, memoryID, valueobjects.ReactionClap)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ReactionSwitched, result.State)
	assert.Equal(t, 0, reactionCount(t, docs, memoryID, valueobjects.ReactionHeart))
	assert.Equal(t, 1, reactionCount(t, docs, memoryID, valueobjects.ReactionClap))

	// Still exactly one join record, now pointing at the new kind.
	joins, err := docs.Query(ctx, entities.CollectionReactions, queryAll())
	require.NoError(t, err)
	require.Len(t, joins, 1)
	assert.Equal(t, "clap", joins[0].Fields["kind"])
}

func TestReactionService_Toggle_TwoUsersIndependent(t *testing.T) {
	// Arrange
	svc, docs, memoryID := newReactionFixture(t)
	ctx := context.Background()

	other := valueobjects.Session{UserID: "user-2", DisplayName: "Riley", Email: "riley@example.com"}

	// Act
	_, err := svc.Toggle(ctx, testSession(), memoryID, valueobjects.ReactionStar)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, other, memoryID, valueobjects.ReactionStar)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, reactionCount(t, docs, memoryID, valueobjects.ReactionStar))
}

func TestReactionService_Toggle_ConcurrentSamePairNetsZero(t *testing.T) {
	// Arrange: an even number of toggles of one kind by one user must always
	// land back on zero, no matter how they interleave.
	svc, docs, memoryID := newReactionFixture(t)
	ctx := context.Background()
	sess := testSession()

	const toggles = 8
	var wg sync.WaitGroup
	wg.Add(toggles)

	// Act
	for i := 0; i < toggles; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Toggle(ctx, sess, memoryID, valueobjects.ReactionSmile)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, 0, reactionCount(t, docs, memoryID, valueobjects.ReactionSmile))
}

func TestReactionService_Toggle_UnknownMemory(t *testing.T) {
	svc, _, _ := newReactionFixture(t)

	_, err := svc.Toggle(context.Background(), testSession(), "does-not-exist", valueobjects.ReactionHeart)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReactionService_Toggle_GuestAndBadKind(t *testing.T) {
	svc, _, memoryID := newReactionFixture(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, valueobjects.Session{}, memoryID, valueobjects.ReactionHeart)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, err = svc.Toggle(ctx, testSession(), memoryID, valueobjects.ReactionKind("thumbsdown"))
	assert.True(t, apperrors.IsValidation(err))
}
