package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/pkg/common"
	apperrors "reunion-backend/pkg/errors"
)

// InviteHandler handles invite requests
type InviteHandler struct {
	invites    *services.InviteService
	workspaces *services.WorkspaceService
	logger     *zap.Logger
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(
	invites *services.InviteService,
	workspaces *services.WorkspaceService,
	logger *zap.Logger,
) *InviteHandler {
	return &InviteHandler{
		invites:    invites,
		workspaces: workspaces,
		logger:     logger,
	}
}

// SendInvitesRequest represents the request body for a batch send
type SendInvitesRequest struct {
	Message string `json:"message,omitempty"`
}

// Send handles POST /invites/send. The recipient list is whatever the
// caller staged in their workspace; the staging list is cleared on send
// and put back untouched if the batch never ran.
func (h *InviteHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req SendInvitesRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(r, &req, 16<<10); err != nil {
			common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
			return
		}
	}

	emails := h.workspaces.TakeStagedInvites(sess.UserID)

	results, err := h.invites.SendBatch(r.Context(), sess, emails, req.Message)
	if err != nil {
		h.workspaces.RestoreStagedInvites(sess.UserID, emails)
		common.RespondAppError(w, err)
		return
	}

	created := 0
	for _, res := range results {
		if res.Status == services.InviteCreated {
			created++
		}
	}

	common.RespondWithToast(w, http.StatusOK, results,
		common.NewToast("Invites sent",
			fmt.Sprintf("%d of %d invite(s) created.", created, len(results)), "mail"))
}

// ListPending handles GET /invites
func (h *InviteHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	params := common.ExtractPaginationParams(r)

	invites, err := h.invites.ListPending(r.Context(), sess, params.Limit, params.Offset)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondPage(w, http.StatusOK, invites, common.BuildPaginationMeta(params, len(invites)))
}
