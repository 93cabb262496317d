package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/utils"
)

// SubmitMemoryCommand is one user-visible submission: the memory fields
// plus any files still pending upload.
type SubmitMemoryCommand struct {
	Title  string `validate:"required,min=1,max=200"`
	Decade string `validate:"required,decade"`
	Story  string `validate:"required,min=1,max=2000"`
	Kind   string `validate:"required,oneof=photo video story"`

	Files    []entities.PendingAttachment
	Progress ProgressFunc
}

// SubmissionResult reports what one submission produced.
type SubmissionResult struct {
	Memory  *entities.Memory         `json:"memory"`
	Uploads []entities.UploadOutcome `json:"uploads"`
}

// SubmissionService persists a memory and its attachments as one
// user-visible action. The backend offers no transaction across
// create+upload+patch, so the write happens in two phases: insert the
// record with an empty attachment list, then patch it with the URLs that
// uploaded successfully. A record left with fewer attachments than were
// picked is the accepted inconsistency window of this design.
type SubmissionService struct {
	docs        ports.DocumentStore
	uploader    *UploadOrchestrator
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewSubmissionService creates a submission service.
func NewSubmissionService(docs ports.DocumentStore, uploader *UploadOrchestrator, callTimeout time.Duration, logger *zap.Logger) *SubmissionService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &SubmissionService{
		docs:        docs,
		uploader:    uploader,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// Submit runs the two-phase submission workflow.
//
// Phase 1 inserts the record and must succeed; its failure aborts the whole
// operation. On success the per-decade counter and a notification record
// are written best-effort: their failure is logged and never surfaced.
// Phase 2 runs only when files are pending; failed uploads are dropped from
// the final attachment list, not retried.
func (s *SubmissionService) Submit(ctx context.Context, sess valueobjects.Session, cmd SubmitMemoryCommand) (*SubmissionResult, error) {
	if sess.IsGuest() {
		return nil, apperrors.NewUnauthorizedError("sign in to share a memory")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	decade := valueobjects.Decade(cmd.Decade)
	now := time.Now()
	fields := entities.NewMemoryFields(cmd.Title, decade, cmd.Story, cmd.Kind, sess, now)

	// Phase 1: insert with an empty attachment list to obtain a stable id.
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	memoryID, err := s.docs.Create(callCtx, entities.CollectionMemories, fields)
	cancel()
	if err != nil {
		if ctxErr := apperrors.FromContext(callCtx, "create memory"); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.Wrap(err, "create memory")
	}

	s.logger.Info("memory created",
		zap.String("memoryID", memoryID),
		zap.String("decade", decade.String()),
		zap.String("userID", sess.UserID),
	)

	// Best-effort side effects; failures are logged, never surfaced.
	s.bumpDecadeCounter(ctx, decade)
	s.writeNotification(ctx, memoryID, cmd.Title, sess)

	result := &SubmissionResult{}

	// Phase 2: upload pending files and patch the attachment list with the
	// URLs that made it.
	if len(cmd.Files) > 0 {
		result.Uploads = s.uploader.UploadAll(ctx, memoryID, cmd.Files, cmd.Progress)

		urls := make([]string, 0, len(result.Uploads))
		for _, outcome := range result.Uploads {
			if outcome.Succeeded() {
				urls = append(urls, outcome.URL)
			}
		}

		if len(urls) > 0 {
			callCtx, cancel = context.WithTimeout(ctx, s.callTimeout)
			err = s.docs.Patch(callCtx, entities.CollectionMemories, memoryID, entities.Document{
				"attachments": urls,
			})
			cancel()
			if err != nil {
				// The record exists without its attachments; surface the
				// failure rather than mask it.
				return nil, apperrors.Wrap(err, "attach uploads to memory")
			}
			fields["attachments"] = urls
		}
	}

	result.Memory = entities.MemoryFromDocument(memoryID, fields)
	return result, nil
}

// bumpDecadeCounter increments the per-decade aggregate used by the
// timeline header.
func (s *SubmissionService) bumpDecadeCounter(ctx context.Context, decade valueobjects.Decade) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.docs.Increment(callCtx, entities.CollectionDecadeCounts, decade.String(), "count", 1); err != nil {
		s.logger.Warn("decade counter increment failed",
			zap.String("decade", decade.String()),
			zap.Error(err),
		)
	}
}

// writeNotification records a notification document. Delivery is handled by
// server-side infrastructure out of scope here.
func (s *SubmissionService) writeNotification(ctx context.Context, memoryID, title string, sess valueobjects.Session) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	_, err := s.docs.Create(callCtx, entities.CollectionNotifications, entities.Document{
		"kind":        "memory_submitted",
		"memory_id":   memoryID,
		"title":       title,
		"author_id":   sess.UserID,
		"author_name": sess.DisplayName,
		"created_at":  utils.NowRFC3339(),
	})
	if err != nil {
		s.logger.Warn("notification record creation failed",
			zap.String("memoryID", memoryID),
			zap.Error(err),
		)
	}
}
