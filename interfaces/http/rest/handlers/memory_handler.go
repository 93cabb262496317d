package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/common"
	apperrors "reunion-backend/pkg/errors"
)

// maxSubmissionBytes caps the whole multipart body; per-file limits are
// enforced again by the upload pipeline.
const maxSubmissionBytes = 64 << 20

// MemoryHandler handles memory submission and browsing requests
type MemoryHandler struct {
	submissions *services.SubmissionService
	memories    *services.MemoryService
	logger      *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(
	submissions *services.SubmissionService,
	memories *services.MemoryService,
	logger *zap.Logger,
) *MemoryHandler {
	return &MemoryHandler{
		submissions: submissions,
		memories:    memories,
		logger:      logger,
	}
}

// Submit handles POST /memories. The body is multipart/form-data: the
// memory fields plus zero or more attachment files under "files".
func (h *MemoryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid multipart body"))
		return
	}

	files, err := readAttachments(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.submissions.Submit(r.Context(), sess, services.SubmitMemoryCommand{
		Title:  r.FormValue("title"),
		Decade: r.FormValue("decade"),
		Story:  r.FormValue("story"),
		Kind:   r.FormValue("kind"),
		Files:  files,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	toast := common.NewToast("Memory shared", "Thanks for adding to the archive!", "camera")
	if failed := countFailedUploads(result.Uploads); failed > 0 {
		toast = common.NewToast("Memory shared",
			fmt.Sprintf("Saved, but %d attachment(s) could not be uploaded.", failed), "alert")
	}

	common.RespondWithToast(w, http.StatusCreated, result, toast)
}

// Get handles GET /memories/{memoryID}
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	memoryID := chi.URLParam(r, "memoryID")

	memory, err := h.memories.Get(r.Context(), memoryID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, memory)
}

// ListByDecade handles GET /memories?decade=1970s
func (h *MemoryHandler) ListByDecade(w http.ResponseWriter, r *http.Request) {
	decade := valueobjects.Decade(r.URL.Query().Get("decade"))
	params := common.ExtractPaginationParams(r)

	memories, err := h.memories.ListByDecade(r.Context(), decade, params.Limit, params.Offset)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondPage(w, http.StatusOK, memories, common.BuildPaginationMeta(params, len(memories)))
}

// CommentRequest represents the request body for adding a comment
type CommentRequest struct {
	Body string `json:"body"`
}

// AddComment handles POST /memories/{memoryID}/comments
func (h *MemoryHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req CommentRequest
	if err := common.ParseJSONBody(r, &req, 16<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	comment, err := h.memories.AddComment(r.Context(), sess, services.AddCommentCommand{
		MemoryID: chi.URLParam(r, "memoryID"),
		Body:     req.Body,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments handles GET /memories/{memoryID}/comments
func (h *MemoryHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)

	comments, err := h.memories.ListComments(r.Context(), chi.URLParam(r, "memoryID"), params.Limit, params.Offset)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondPage(w, http.StatusOK, comments, common.BuildPaginationMeta(params, len(comments)))
}

// DecadeCounts handles GET /decades
func (h *MemoryHandler) DecadeCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.memories.DecadeCounts(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, counts)
}

// readAttachments drains the uploaded files into pending attachments.
func readAttachments(r *http.Request) ([]entities.PendingAttachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["files"]
	files := make([]entities.PendingAttachment, 0, len(headers))

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable attachment: " + header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable attachment: " + header.Filename)
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		files = append(files, entities.PendingAttachment{
			Name:        header.Filename,
			Size:        int64(len(data)),
			ContentType: contentType,
			Data:        data,
		})
	}

	return files, nil
}

func countFailedUploads(uploads []entities.UploadOutcome) int {
	failed := 0
	for _, u := range uploads {
		if !u.Succeeded() {
			failed++
		}
	}
	return failed
}
