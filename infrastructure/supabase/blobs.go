package supabase

import (
	"context"
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"

	"reunion-backend/application/ports"
)

// BlobStore implements the blob port over Supabase Storage. Objects go into
// one public bucket; the returned URL is the bucket's public URL for the
// object.
type BlobStore struct {
	storage *storage_go.Client
	bucket  string
	logger  *zap.Logger
}

// NewBlobStore creates a storage-backed blob store.
func NewBlobStore(clients *Clients, logger *zap.Logger) *BlobStore {
	return &BlobStore{
		storage: clients.API.Storage,
		bucket:  clients.Bucket,
		logger:  logger,
	}
}

// Put streams the reader into the bucket. The SDK exposes no native
// progress events, so the reader is wrapped to report bytes as they are
// consumed.
func (s *BlobStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string, progress func(written int64)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := true
	_, err := s.storage.UploadFile(s.bucket, path, &countingReader{r: r, progress: progress}, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	url := s.storage.GetPublicUrl(s.bucket, path).SignedURL
	if url == "" {
		return "", fmt.Errorf("no public url for %s", path)
	}
	return url, nil
}

// Delete removes an object from the bucket.
func (s *BlobStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.storage.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// countingReader reports cumulative bytes read through it.
type countingReader struct {
	r        io.Reader
	read     int64
	progress func(written int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.read += int64(n)
		if c.progress != nil {
			c.progress(c.read)
		}
	}
	return n, err
}

var _ ports.BlobStore = (*BlobStore)(nil)
