package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
)

// DocumentStore implements the document port over postgrest tables. One
// collection maps to one table; every table carries a text "id" primary
// key so the port's create-then-patch shape works uniformly.
type DocumentStore struct {
	rest   *postgrest.Client
	logger *zap.Logger
}

// NewDocumentStore creates a postgrest-backed document store.
func NewDocumentStore(clients *Clients, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{rest: clients.Rest, logger: logger}
}

// Create inserts a row. A caller-supplied "id" field is honored (decade
// counters use natural keys); otherwise a UUID is assigned client-side so
// phase 2 of a submission has a stable identifier before the insert
// resolves.
func (s *DocumentStore) Create(ctx context.Context, collection string, fields entities.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	row := make(entities.Document, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["id"] = id

	if _, _, err := s.rest.From(collection).Insert(row, false, "", "", "").Execute(); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

// Patch applies a partial update to one row.
func (s *DocumentStore) Patch(ctx context.Context, collection, id string, fields entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := s.rest.From(collection).Update(fields, "", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get returns one row or ports.ErrNotFound.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []entities.Document
	if _, err := s.rest.From(collection).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select %s/%s: %w", collection, id, err)
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	return rows[0], nil
}

// Query returns the rows matching q.
func (s *DocumentStore) Query(ctx context.Context, collection string, q ports.Query) ([]ports.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb := s.rest.From(collection).Select("*", "", false)
	for field, want := range q.Eq {
		fb = fb.Eq(field, want)
	}
	if q.OrderBy != "" {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc})
	}
	if q.Limit > 0 {
		fb = fb.Range(q.Offset, q.Offset+q.Limit-1, "")
	} else if q.Offset > 0 {
		fb = fb.Range(q.Offset, q.Offset+1_000_000, "")
	}

	var rows []entities.Document
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	results := make([]ports.QueryResult, 0, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		results = append(results, ports.QueryResult{ID: id, Fields: row})
	}
	return results, nil
}

// Increment atomically adds delta to a numeric column through the
// increment_field database function, keeping the read-modify-write inside
// one statement server-side.
func (s *DocumentStore) Increment(ctx context.Context, collection, id, field string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.rest.Rpc("increment_field", "", map[string]interface{}{
		"t_name": collection,
		"row_id": id,
		"f_name": field,
		"delta":  delta,
	})
	if s.rest.ClientError != nil {
		err := s.rest.ClientError
		s.rest.ClientError = nil
		return fmt.Errorf("increment %s/%s.%s: %w", collection, id, field, err)
	}
	return nil
}

// Delete removes one row. Deleting an absent row is not an error.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := s.rest.From(collection).Delete("", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

var _ ports.DocumentStore = (*DocumentStore)(nil)
