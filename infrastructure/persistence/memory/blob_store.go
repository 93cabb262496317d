package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"reunion-backend/application/ports"
)

// BlobStore is an in-process blob store. Objects live in a map; URLs use a
// fake host so tests can assert on them.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPaths lists object paths whose upload should fail; tests use it
	// to exercise partial-batch degradation.
	FailPaths map[string]error

	// ChunkSize controls how many bytes are consumed per progress callback.
	ChunkSize int
}

// NewBlobStore creates an empty blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		objects:   make(map[string][]byte),
		FailPaths: make(map[string]error),
		ChunkSize: 64 << 10,
	}
}

// Put stores the object, reporting progress in chunks.
func (s *BlobStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string, progress func(written int64)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	failErr := s.FailPaths[path]
	s.mu.RUnlock()
	if failErr != nil {
		return "", failErr
	}

	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = 64 << 10
	}

	var data []byte
	buf := make([]byte, chunk)
	var written int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			written += int64(n)
			if progress != nil {
				progress(written)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	s.objects[path] = data
	s.mu.Unlock()

	return fmt.Sprintf("https://blobs.local/%s", path), nil
}

// Delete removes an object.
func (s *BlobStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

// Object returns a stored object's bytes for test assertions.
func (s *BlobStore) Object(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}

var _ ports.BlobStore = (*BlobStore)(nil)
