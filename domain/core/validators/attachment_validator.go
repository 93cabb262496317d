package validators

import (
	"fmt"

	apperrors "reunion-backend/pkg/errors"

	"reunion-backend/domain/core/entities"
)

// MaxAttachmentBytes is the fixed upload size ceiling (10 MB).
const MaxAttachmentBytes = 10 << 20

// allowedMediaTypes is the attachment allow-list: web image formats plus PDF.
var allowedMediaTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
}

// ValidateAttachment checks a pending file against the media-type allow-list
// and the size ceiling. A rejected file is skipped by the upload batch, not
// fatal to it.
func ValidateAttachment(file entities.PendingAttachment, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxAttachmentBytes
	}

	if _, ok := allowedMediaTypes[file.ContentType]; !ok {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s: file type %q is not allowed", file.Name, file.ContentType))
	}

	if file.Size > maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s: file exceeds the %d MB limit", file.Name, maxBytes>>20))
	}

	return nil
}

// IsImage reports whether the content type is a raster image we can try to
// downscale before upload.
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
