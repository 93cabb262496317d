package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/utils"
)

// AddCommentCommand is one comment submission.
type AddCommentCommand struct {
	MemoryID string `validate:"required"`
	Body     string `validate:"required,min=1,max=1000"`
}

// MemoryService serves the timeline: browsing memories by decade, reading a
// single memory, appending comments and the per-decade counter read-out.
type MemoryService struct {
	docs        ports.DocumentStore
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewMemoryService creates a memory service.
func NewMemoryService(docs ports.DocumentStore, callTimeout time.Duration, logger *zap.Logger) *MemoryService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &MemoryService{
		docs:        docs,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// ListByDecade returns a decade's memories, newest first.
func (s *MemoryService) ListByDecade(ctx context.Context, decade valueobjects.Decade, limit, offset int) ([]*entities.Memory, error) {
	if !valueobjects.IsValidDecade(decade.String()) {
		return nil, apperrors.NewValidationError("unknown decade label")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	results, err := s.docs.Query(callCtx, entities.CollectionMemories, ports.Query{
		Eq:      map[string]string{"decade": decade.String()},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list memories")
	}

	memories := make([]*entities.Memory, 0, len(results))
	for _, r := range results {
		memories = append(memories, entities.MemoryFromDocument(r.ID, r.Fields))
	}
	return memories, nil
}

// Get returns one memory.
func (s *MemoryService) Get(ctx context.Context, memoryID string) (*entities.Memory, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	doc, err := s.docs.Get(callCtx, entities.CollectionMemories, memoryID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("memory")
		}
		return nil, apperrors.Wrap(err, "load memory")
	}
	return entities.MemoryFromDocument(memoryID, doc), nil
}

// AddComment appends a comment to a memory and bumps its comment counter.
func (s *MemoryService) AddComment(ctx context.Context, sess valueobjects.Session, cmd AddCommentCommand) (*entities.Comment, error) {
	if sess.IsGuest() {
		return nil, apperrors.NewUnauthorizedError("sign in to comment")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if _, err := s.docs.Get(callCtx, entities.CollectionMemories, cmd.MemoryID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("memory")
		}
		return nil, apperrors.Wrap(err, "load memory")
	}

	now := time.Now()
	fields := entities.NewCommentFields(cmd.MemoryID, cmd.Body, sess, now)
	commentID, err := s.docs.Create(callCtx, entities.CollectionComments, fields)
	if err != nil {
		return nil, apperrors.Wrap(err, "create comment")
	}

	if err := s.docs.Increment(callCtx, entities.CollectionMemories, cmd.MemoryID, "comment_count", 1); err != nil {
		return nil, apperrors.Wrap(err, "increment comment counter")
	}

	return entities.CommentFromDocument(commentID, fields), nil
}

// ListComments returns a memory's comments oldest first.
func (s *MemoryService) ListComments(ctx context.Context, memoryID string, limit, offset int) ([]*entities.Comment, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	results, err := s.docs.Query(callCtx, entities.CollectionComments, ports.Query{
		Eq:      map[string]string{"memory_id": memoryID},
		OrderBy: "created_at",
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list comments")
	}

	comments := make([]*entities.Comment, 0, len(results))
	for _, r := range results {
		comments = append(comments, entities.CommentFromDocument(r.ID, r.Fields))
	}
	return comments, nil
}

// DecadeCounts returns the aggregate submission counter for every decade.
// Absent counters read as zero.
func (s *MemoryService) DecadeCounts(ctx context.Context) (map[string]int, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	counts := make(map[string]int, len(valueobjects.Decades))
	for _, decade := range valueobjects.Decades {
		doc, err := s.docs.Get(callCtx, entities.CollectionDecadeCounts, decade.String())
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				counts[decade.String()] = 0
				continue
			}
			return nil, apperrors.Wrap(err, "load decade counter")
		}
		switch v := doc["count"].(type) {
		case int:
			counts[decade.String()] = v
		case int64:
			counts[decade.String()] = int(v)
		case float64:
			counts[decade.String()] = int(v)
		default:
			counts[decade.String()] = 0
		}
	}
	return counts, nil
}
