package ports

import (
	"context"
	"errors"
	"io"

	"reunion-backend/domain/core/entities"
)

// ErrNotFound is returned by DocumentStore.Get for an absent record.
var ErrNotFound = errors.New("document not found")

// Query narrows and orders a collection scan. Eq filters are ANDed.
type Query struct {
	Eq      map[string]string
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// QueryResult is one matching document with its identifier.
type QueryResult struct {
	ID     string
	Fields entities.Document
}

// DocumentStore is the document-database port. Implementations: the
// Supabase adapter in production, the in-memory store in tests and local
// development. Injected at startup; there is no ambient global client.
type DocumentStore interface {
	// Create inserts a document and returns its identifier.
	Create(ctx context.Context, collection string, fields entities.Document) (string, error)

	// Patch applies a partial update to an existing document.
	Patch(ctx context.Context, collection, id string, fields entities.Document) error

	// Get returns a document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (entities.Document, error)

	// Query returns the documents matching q.
	Query(ctx context.Context, collection string, q Query) ([]QueryResult, error)

	// Increment atomically adds delta to a numeric field.
	Increment(ctx context.Context, collection, id, field string, delta int) error

	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// BlobStore is the durable file-storage port. Put streams the reader to
// storage, invoking progress with the running byte count, and returns the
// public URL of the stored object.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string, progress func(written int64)) (string, error)
	Delete(ctx context.Context, path string) error
}
