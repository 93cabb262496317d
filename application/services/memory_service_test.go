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

func newMemoryFixture() (*MemoryService, *memstore.DocumentStore) {
	docs := memstore.NewDocumentStore()
	return NewMemoryService(docs, 5*time.Second, zap.NewNop()), docs
}

func seedMemory(t *testing.T, docs *memstore.DocumentStore, title string, decade valueobjects.Decade, at time.Time) string {
	t.Helper()
	fields := entities.NewMemoryFields(title, decade, "story text", "story", testSession(), at)
	id, err := docs.Create(context.Background(), entities.CollectionMemories, fields)
	require.NoError(t, err)
	return id
}

func TestMemoryService_ListByDecade_NewestFirst(t *testing.T) {
	// Arrange
	svc, docs := newMemoryFixture()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seedMemory(t, docs, "older", "1970s", base)
	seedMemory(t, docs, "newer", "1970s", base.Add(time.Hour))
	seedMemory(t, docs, "other decade", "1990s", base.Add(2*time.Hour))

	// Act
	memories, err := svc.ListByDecade(ctx, "1970s", 20, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, memories, 2)
	assert.Equal(t, "newer", memories[0].Title)
	assert.Equal(t, "older", memories[1].Title)
}

func TestMemoryService_ListByDecade_UnknownLabel(t *testing.T) {
	svc, _ := newMemoryFixture()

	_, err := svc.ListByDecade(context.Background(), "1890s", 20, 0)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMemoryService_AddComment_BumpsCounter(t *testing.T) {
	// Arrange
	svc, docs := newMemoryFixture()
	ctx := context.Background()
	memoryID := seedMemory(t, docs, "with comments", "1980s", time.Now())

	// Act
	comment, err := svc.AddComment(ctx, testSession(), AddCommentCommand{
		MemoryID: memoryID,
		Body:     "I was there!",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, memoryID, comment.MemoryID)
	assert.Equal(t, testSession().DisplayName, comment.AuthorName)

	memory, err := svc.Get(ctx, memoryID)
	require.NoError(t, err)
	assert.Equal(t, 1, memory.CommentCount)

	comments, err := svc.ListComments(ctx, memoryID, 20, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "I was there!", comments[0].Body)
}

func TestMemoryService_AddComment_UnknownMemory(t *testing.T) {
	svc, _ := newMemoryFixture()

	_, err := svc.AddComment(context.Background(), testSession(), AddCommentCommand{
		MemoryID: "missing",
		Body:     "hello",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryService_DecadeCounts_AbsentMeansZero(t *testing.T) {
	// Arrange
	svc, docs := newMemoryFixture()
	ctx := context.Background()

	require.NoError(t, docs.Increment(ctx, entities.CollectionDecadeCounts, "1970s", "count", 3))

	// Act
	counts, err := svc.DecadeCounts(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, counts["1970s"])
	assert.Equal(t, 0, counts["2020s"])
	assert.Len(t, counts, len(valueobjects.Decades))
}
