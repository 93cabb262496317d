package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/common"
	apperrors "reunion-backend/pkg/errors"
)

// ReactionHandler handles reaction toggle requests
type ReactionHandler struct {
	reactions *services.ReactionService
	logger    *zap.Logger
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(reactions *services.ReactionService, logger *zap.Logger) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, logger: logger}
}

// ToggleRequest represents the request body for toggling a reaction
type ToggleRequest struct {
	Kind string `json:"kind"`
}

// Toggle handles POST /memories/{memoryID}/reactions
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req ToggleRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.reactions.Toggle(r.Context(), sess, chi.URLParam(r, "memoryID"), valueobjects.ReactionKind(req.Kind))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
