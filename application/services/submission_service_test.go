package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	memstore "reunion-backend/infrastructure/persistence/memory"
	apperrors "reunion-backend/pkg/errors"
)

func queryAll() ports.Query {
	return ports.Query{}
}

// pngFile encodes a noisy PNG so the bytes stay near raw size; wide ones
// exercise the downscale step.
func pngFile(t *testing.T, name string, width, height int) entities.PendingAttachment {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rng := rand.New(rand.NewSource(1))
	rng.Read(img.Pix)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return entities.PendingAttachment{
		Name:        name,
		Size:        int64(buf.Len()),
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}
}

func testSession() valueobjects.Session {
	return valueobjects.Session{
		UserID:      "user-1",
		DisplayName: "Dana Whitfield",
		Email:       "dana@example.com",
		AccessToken: "token",
	}
}

func newSubmissionFixture() (*SubmissionService, *memstore.DocumentStore, *memstore.BlobStore) {
	docs := memstore.NewDocumentStore()
	blobs := memstore.NewBlobStore()
	orch := NewUploadOrchestrator(blobs, testLimits, zap.NewNop())
	svc := NewSubmissionService(docs, orch, 5*time.Second, zap.NewNop())
	return svc, docs, blobs
}

func TestSubmissionService_Submit_WithAttachments(t *testing.T) {
	// Arrange
	svc, docs, blobs := newSubmissionFixture()
	ctx := context.Background()

	// Roughly 1 MB and 3 MB of pixels; the second is wide enough that the
	// upload pipeline downscales it.
	teamPhoto := pngFile(t, "team_photo.png", 800, 350)
	gymBanner := pngFile(t, "gym_banner.png", 2600, 290)

	cmd := SubmitMemoryCommand{
		Title:  "States finals 2009",
		Decade: "2000s",
		Story:  "The whole class drove down for the game.",
		Kind:   "photo",
		Files:  []entities.PendingAttachment{teamPhoto, gymBanner},
	}

	// Act
	result, err := svc.Submit(ctx, testSession(), cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Memory)
	assert.Len(t, result.Uploads, 2)
	assert.Len(t, result.Memory.Attachments, 2)

	stored, err := docs.Get(ctx, entities.CollectionMemories, result.Memory.ID)
	require.NoError(t, err)
	attachments, _ := stored["attachments"].([]string)
	assert.Len(t, attachments, 2)

	// The narrow image went up untouched; the wide one was re-encoded
	// smaller than its source.
	original, ok := blobs.Object("memories/" + result.Memory.ID + "/0_team_photo.png")
	require.True(t, ok)
	assert.Len(t, original, int(teamPhoto.Size))

	shrunk, ok := blobs.Object("memories/" + result.Memory.ID + "/1_gym_banner.png")
	require.True(t, ok)
	assert.Less(t, len(shrunk), int(gymBanner.Size))
	assert.Equal(t, "image/jpeg", result.Uploads[1].ContentType)

	// Decade counter bumped once.
	counter, err := docs.Get(ctx, entities.CollectionDecadeCounts, "2000s")
	require.NoError(t, err)
	assert.Equal(t, 1, counter["count"])

	// A notification record was written.
	notifications, err := docs.Query(ctx, entities.CollectionNotifications, queryAll())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, result.Memory.ID, notifications[0].Fields["memory_id"])
}

func TestSubmissionService_Submit_StoryWithoutFiles(t *testing.T) {
	// Arrange
	svc, docs, _ := newSubmissionFixture()
	ctx := context.Background()

	cmd := SubmitMemoryCommand{
		Title:  "Cafeteria mystery meat",
		Decade: "1980s",
		Story:  "Nobody ever figured out what it was.",
		Kind:   "story",
	}

	// Act
	result, err := svc.Submit(ctx, testSession(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Uploads)
	assert.Empty(t, result.Memory.Attachments)

	stored, err := docs.Get(ctx, entities.CollectionMemories, result.Memory.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafeteria mystery meat", stored["title"])
	assert.Equal(t, 0, stored["comment_count"])
}

func TestSubmissionService_Submit_GuestRejected(t *testing.T) {
	svc, _, _ := newSubmissionFixture()

	_, err := svc.Submit(context.Background(), valueobjects.Session{}, SubmitMemoryCommand{
		Title:  "t",
		Decade: "1990s",
		Story:  "s",
		Kind:   "story",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestSubmissionService_Submit_InvalidDecade(t *testing.T) {
	svc, docs, _ := newSubmissionFixture()

	_, err := svc.Submit(context.Background(), testSession(), SubmitMemoryCommand{
		Title:  "Bad decade",
		Decade: "1890s",
		Story:  "story",
		Kind:   "story",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Nothing was written.
	memories, err := docs.Query(context.Background(), entities.CollectionMemories, queryAll())
	require.NoError(t, err)
	assert.Empty(t, memories)
}

func TestSubmissionService_Submit_AllUploadsFailKeepsRecord(t *testing.T) {
	// Arrange
	svc, docs, _ := newSubmissionFixture()
	ctx := context.Background()

	huge := entities.PendingAttachment{
		Name:        "yearbook-scan.pdf",
		Size:        12 << 20,
		ContentType: "application/pdf",
		Data:        []byte("stub"),
	}

	// Act
	result, err := svc.Submit(ctx, testSession(), SubmitMemoryCommand{
		Title:  "Yearbook",
		Decade: "1970s",
		Story:  "Scanned the whole thing.",
		Kind:   "photo",
		Files:  []entities.PendingAttachment{huge},
	})

	// Assert: the record survives with an empty attachment list.
	require.NoError(t, err)
	require.Len(t, result.Uploads, 1)
	assert.False(t, result.Uploads[0].Succeeded())
	assert.Empty(t, result.Memory.Attachments)

	stored, err := docs.Get(ctx, entities.CollectionMemories, result.Memory.ID)
	require.NoError(t, err)
	attachments, _ := stored["attachments"].([]string)
	assert.Empty(t, attachments)
}
