package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/common"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/viewstate"
)

// WorkspaceHandler handles per-user view state and invite staging
type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
	logger     *zap.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaces *services.WorkspaceService, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, logger: logger}
}

// Get handles GET /workspace
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	common.RespondJSON(w, http.StatusOK, h.workspaces.Get(sess.UserID))
}

// SetViewRequest represents the request body for switching views
type SetViewRequest struct {
	View string `json:"view"`
}

// SetView handles PUT /workspace/view
func (h *WorkspaceHandler) SetView(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req SetViewRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	workspace, err := h.workspaces.SetView(sess.UserID, viewstate.View(req.View))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, workspace)
}

// SetDecadeRequest represents the request body for selecting a decade
type SetDecadeRequest struct {
	Decade string `json:"decade"`
}

// SetDecade handles PUT /workspace/decade
func (h *WorkspaceHandler) SetDecade(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req SetDecadeRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	workspace, err := h.workspaces.SetDecade(sess.UserID, valueobjects.Decade(req.Decade))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, workspace)
}

// SetContributionRequest represents the request body for picking a
// contribution type
type SetContributionRequest struct {
	Contribution string `json:"contribution"`
}

// SetContribution handles PUT /workspace/contribution
func (h *WorkspaceHandler) SetContribution(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req SetContributionRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	workspace, err := h.workspaces.SetContribution(sess.UserID, viewstate.ContributionType(req.Contribution))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, workspace)
}

// StageInviteRequest represents the request body for staging an address
type StageInviteRequest struct {
	Email string `json:"email"`
}

// StageInvite handles POST /workspace/invites
func (h *WorkspaceHandler) StageInvite(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req StageInviteRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	workspace, err := h.workspaces.StageInvite(sess.UserID, req.Email)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, workspace)
}

// UnstageInvite handles DELETE /workspace/invites
func (h *WorkspaceHandler) UnstageInvite(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	var req StageInviteRequest
	if err := common.ParseJSONBody(r, &req, 4<<10); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	common.RespondJSON(w, http.StatusOK, h.workspaces.UnstageInvite(sess.UserID, req.Email))
}
