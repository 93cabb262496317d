package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/validators"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/imaging"
)

// ProgressFunc receives upload progress: the overall percentage across the
// whole batch, the index of the file in flight and the batch size.
type ProgressFunc func(overallPercent float64, currentFile, totalFiles int)

// UploadLimits are the runtime-tunable bounds on a single upload batch.
type UploadLimits struct {
	// MaxFileBytes is the per-file size ceiling.
	MaxFileBytes int64
	// CompressThresholdBytes: images larger than this are downscaled
	// before upload.
	CompressThresholdBytes int64
	// MaxImageWidth is the pixel width images are downscaled to.
	MaxImageWidth int
	// CallTimeout bounds each storage call.
	CallTimeout time.Duration
}

// DefaultUploadLimits mirrors the original client's fixed constants.
func DefaultUploadLimits() UploadLimits {
	return UploadLimits{
		MaxFileBytes:           validators.MaxAttachmentBytes,
		CompressThresholdBytes: 1 << 20,
		MaxImageWidth:          1920,
		CallTimeout:            30 * time.Second,
	}
}

// UploadOrchestrator uploads a batch of pending attachments sequentially.
// Files go up one at a time so overall progress can be computed as the
// byte-weighted sum of finished files plus the in-flight file's fraction.
// One file's failure never aborts the rest of the batch.
type UploadOrchestrator struct {
	blobs  ports.BlobStore
	limits func() UploadLimits
	logger *zap.Logger
}

// NewUploadOrchestrator creates an orchestrator. limits is called per batch
// so hot-reloaded configuration takes effect without a restart.
func NewUploadOrchestrator(blobs ports.BlobStore, limits func() UploadLimits, logger *zap.Logger) *UploadOrchestrator {
	if limits == nil {
		limits = DefaultUploadLimits
	}
	return &UploadOrchestrator{
		blobs:  blobs,
		limits: limits,
		logger: logger,
	}
}

// UploadAll uploads every pending file for a memory record. The returned
// slice has the same length and order as files: each entry is either a
// success (URL, path, name, size, type) or an error entry carrying the
// original file name. Progress is monotone non-decreasing and reaches 100
// only when every file has settled.
func (o *UploadOrchestrator) UploadAll(ctx context.Context, memoryID string, files []entities.PendingAttachment, progress ProgressFunc) []entities.UploadOutcome {
	limits := o.limits()
	outcomes := make([]entities.UploadOutcome, len(files))

	var totalWeight int64
	for _, f := range files {
		totalWeight += f.Size
	}

	var completedWeight int64
	settled := 0
	lastPercent := 0.0

	report := func(extra float64, index int) {
		if progress == nil {
			return
		}
		var percent float64
		if totalWeight > 0 {
			percent = (float64(completedWeight) + extra) / float64(totalWeight) * 100
		} else if len(files) > 0 {
			// All files are empty; weight by files settled so 100 is
			// reached only after the last one.
			percent = float64(settled) / float64(len(files)) * 100
		}
		// Clamp so compression-induced size changes can never make the
		// reported value run backwards.
		if percent < lastPercent {
			percent = lastPercent
		}
		if percent > 100 {
			percent = 100
		}
		lastPercent = percent
		progress(percent, index, len(files))
	}

	for i, file := range files {
		outcomes[i] = o.uploadOne(ctx, memoryID, i, file, limits, report)
		completedWeight += file.Size
		settled++
		report(0, i)
	}

	return outcomes
}

// uploadOne validates, optionally compresses and uploads a single file.
func (o *UploadOrchestrator) uploadOne(ctx context.Context, memoryID string, index int, file entities.PendingAttachment, limits UploadLimits, report func(extra float64, index int)) entities.UploadOutcome {
	outcome := entities.UploadOutcome{
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
	}

	// Validation precedes upload; a rejected file is an error entry, not a
	// batch failure.
	if err := validators.ValidateAttachment(file, limits.MaxFileBytes); err != nil {
		outcome.Err = err
		outcome.ErrMessage = apperrors.GetAppError(err).Message
		o.logger.Warn("attachment rejected",
			zap.String("memoryID", memoryID),
			zap.String("file", file.Name),
			zap.Error(err),
		)
		return outcome
	}

	data := file.Data
	contentType := file.ContentType
	if validators.IsImage(contentType) && file.Size > limits.CompressThresholdBytes {
		if result, err := imaging.Downscale(data, limits.MaxImageWidth); err != nil {
			// Compression failure falls back to the original bytes.
			o.logger.Warn("image downscale failed, uploading original",
				zap.String("file", file.Name),
				zap.Error(err),
			)
		} else if result.Changed {
			data = result.Data
			contentType = result.ContentType
		}
	}

	blobPath := attachmentPath(memoryID, index, file.Name)
	uploadSize := int64(len(data))
	weight := float64(file.Size)

	callCtx, cancel := context.WithTimeout(ctx, limits.CallTimeout)
	defer cancel()

	url, err := o.blobs.Put(callCtx, blobPath, bytes.NewReader(data), uploadSize, contentType, func(written int64) {
		if uploadSize > 0 {
			report(float64(written)/float64(uploadSize)*weight, index)
		}
	})
	if err != nil {
		if ctxErr := apperrors.FromContext(callCtx, "upload "+file.Name); ctxErr != nil {
			err = ctxErr
		} else {
			err = apperrors.NewExternalError("storage", err)
		}
		outcome.Err = err
		outcome.ErrMessage = apperrors.GetAppError(err).Message
		o.logger.Error("attachment upload failed",
			zap.String("memoryID", memoryID),
			zap.String("file", file.Name),
			zap.Error(err),
		)
		return outcome
	}

	outcome.URL = url
	outcome.Path = blobPath
	outcome.ContentType = contentType
	return outcome
}

// attachmentPath builds the storage object path for one attachment.
func attachmentPath(memoryID string, index int, name string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, path.Base(name))
	return fmt.Sprintf("memories/%s/%d_%s", memoryID, index, base)
}
