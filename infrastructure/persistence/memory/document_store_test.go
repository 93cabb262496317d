package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
)

func TestDocumentStore_CreateAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "memories", entities.Document{"title": "Prom night"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.Get(ctx, "memories", id)
	require.NoError(t, err)
	assert.Equal(t, "Prom night", doc["title"])

	_, err = store.Get(ctx, "memories", "missing")
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestDocumentStore_CreateHonorsNaturalKey(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "decade_counts", entities.Document{"id": "1970s", "count": 0})
	require.NoError(t, err)
	assert.Equal(t, "1970s", id)

	_, err = store.Create(ctx, "decade_counts", entities.Document{"id": "1970s"})
	assert.Error(t, err)
}

func TestDocumentStore_PatchPartial(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "memories", entities.Document{"title": "t", "story": "s"})
	require.NoError(t, err)

	require.NoError(t, store.Patch(ctx, "memories", id, entities.Document{"story": "updated"}))

	doc, err := store.Get(ctx, "memories", id)
	require.NoError(t, err)
	assert.Equal(t, "t", doc["title"])
	assert.Equal(t, "updated", doc["story"])

	err = store.Patch(ctx, "memories", "missing", entities.Document{"x": 1})
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestDocumentStore_QueryFilterOrderPage(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	for _, doc := range []entities.Document{
		{"decade": "1970s", "created_at": "2024-01-01T00:00:00Z"},
		{"decade": "1970s", "created_at": "2024-01-03T00:00:00Z"},
		{"decade": "1970s", "created_at": "2024-01-02T00:00:00Z"},
		{"decade": "1990s", "created_at": "2024-01-04T00:00:00Z"},
	} {
		_, err := store.Create(ctx, "memories", doc)
		require.NoError(t, err)
	}

	results, err := store.Query(ctx, "memories", ports.Query{
		Eq:      map[string]string{"decade": "1970s"},
		OrderBy: "created_at",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "2024-01-03T00:00:00Z", results[0].Fields["created_at"])
	assert.Equal(t, "2024-01-01T00:00:00Z", results[2].Fields["created_at"])

	// Paging.
	page, err := store.Query(ctx, "memories", ports.Query{
		Eq:      map[string]string{"decade": "1970s"},
		OrderBy: "created_at",
		Limit:   1,
		Offset:  1,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-01-02T00:00:00Z", page[0].Fields["created_at"])

	// Offset past the end yields an empty page, not an error.
	empty, err := store.Query(ctx, "memories", ports.Query{
		Eq:     map[string]string{"decade": "1970s"},
		Offset: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDocumentStore_IncrementUpserts(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Increment(ctx, "decade_counts", "1970s", "count", 1))
	require.NoError(t, store.Increment(ctx, "decade_counts", "1970s", "count", 2))

	doc, err := store.Get(ctx, "decade_counts", "1970s")
	require.NoError(t, err)
	assert.Equal(t, 3, doc["count"])

	require.NoError(t, store.Increment(ctx, "decade_counts", "1970s", "count", -3))
	doc, err = store.Get(ctx, "decade_counts", "1970s")
	require.NoError(t, err)
	assert.Equal(t, 0, doc["count"])
}

func TestDocumentStore_GetReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "memories", entities.Document{"attachments": []string{"a"}})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "memories", id)
	require.NoError(t, err)
	doc["attachments"].([]string)[0] = "mutated"

	fresh, err := store.Get(ctx, "memories", id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fresh["attachments"])
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "reactions", entities.Document{"kind": "heart"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "reactions", id))
	_, err = store.Get(ctx, "reactions", id)
	assert.True(t, errors.Is(err, ports.ErrNotFound))

	// Deleting twice is not an error.
	assert.NoError(t, store.Delete(ctx, "reactions", id))
}

func TestDocumentStore_ConcurrentReadsOnFreshCollections(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		collection := fmt.Sprintf("collection_%d", i%4)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.Get(ctx, collection, "missing")
			assert.True(t, errors.Is(err, ports.ErrNotFound))
		}()
		go func() {
			defer wg.Done()
			results, err := store.Query(ctx, collection, ports.Query{})
			assert.NoError(t, err)
			assert.Empty(t, results)
		}()
	}
	wg.Wait()

	// Reads alone must not materialize collections.
	id, err := store.Create(ctx, "collection_0", entities.Document{"title": "first"})
	require.NoError(t, err)
	require.NotEmpty(t, id)
}
