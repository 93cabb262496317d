package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
)

// DocumentStore is an in-process document database used by tests and local
// development when no Supabase project is configured.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]entities.Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string]map[string]entities.Document)}
}

// Create inserts a document. An "id" field, if present, is honored so
// callers can use natural keys (decade counters); otherwise a UUID is
// assigned.
func (s *DocumentStore) Create(ctx context.Context, collection string, fields entities.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	if _, exists := coll[id]; exists {
		return "", fmt.Errorf("document %s/%s already exists", collection, id)
	}
	coll[id] = cloneDocument(fields)
	return id, nil
}

// Patch applies a partial update to an existing document.
func (s *DocumentStore) Patch(ctx context.Context, collection, id string, fields entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return ports.ErrNotFound
	}
	for k, v := range cloneDocument(fields) {
		doc[k] = v
	}
	return nil
}

// Get returns a document or ports.ErrNotFound.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneDocument(doc), nil
}

// Query returns the documents matching q, filtered, ordered and paged.
func (s *DocumentStore) Query(ctx context.Context, collection string, q ports.Query) ([]ports.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var matched []ports.QueryResult
	for id, doc := range s.collections[collection] {
		if matchesFilters(doc, q.Eq) {
			matched = append(matched, ports.QueryResult{ID: id, Fields: cloneDocument(doc)})
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareField(matched[i].Fields[q.OrderBy], matched[j].Fields[q.OrderBy])
			if q.Desc {
				return !less
			}
			return less
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// Increment atomically adds delta to a numeric field, creating the document
// and the field as needed.
func (s *DocumentStore) Increment(ctx context.Context, collection, id, field string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	doc, ok := coll[id]
	if !ok {
		doc = entities.Document{}
		coll[id] = doc
	}

	current := 0
	switch v := doc[field].(type) {
	case int:
		current = v
	case int64:
		current = int(v)
	case float64:
		current = int(v)
	}
	doc[field] = current + delta
	return nil
}

// Delete removes a document. Absent documents are not an error.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// collection returns the named collection map, creating it if needed.
// Callers hold the write lock; readers index s.collections directly so a
// missing collection stays missing instead of being created under RLock.
func (s *DocumentStore) collection(name string) map[string]entities.Document {
	coll, ok := s.collections[name]
	if !ok {
		coll = make(map[string]entities.Document)
		s.collections[name] = coll
	}
	return coll
}

func matchesFilters(doc entities.Document, eq map[string]string) bool {
	for field, want := range eq {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func compareField(a, b interface{}) bool {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return av < bv
	case int:
		bv, _ := b.(int)
		return av < bv
	case float64:
		bv, _ := b.(float64)
		return av < bv
	}
	return false
}

func cloneDocument(doc entities.Document) entities.Document {
	out := make(entities.Document, len(doc))
	for k, v := range doc {
		if strs, ok := v.([]string); ok {
			v = append([]string(nil), strs...)
		}
		out[k] = v
	}
	return out
}

var _ ports.DocumentStore = (*DocumentStore)(nil)
