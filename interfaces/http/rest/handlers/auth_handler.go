package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/pkg/common"
	apperrors "reunion-backend/pkg/errors"
)

const maxAuthBodyBytes = 16 << 10

// AuthHandler handles session lifecycle requests
type AuthHandler struct {
	sessions *services.SessionService
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

// SignUpRequest represents the request body for registration
type SignUpRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	DisplayName      string `json:"display_name"`
	GraduationDecade string `json:"graduation_decade,omitempty"`
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest represents the request body for a reset link
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	sess, err := h.sessions.SignUp(r.Context(), services.SignUpCommand{
		Email:            req.Email,
		Password:         req.Password,
		DisplayName:      req.DisplayName,
		GraduationDecade: req.GraduationDecade,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondWithToast(w, http.StatusCreated, sessionResponse(sess),
		common.NewToast("Welcome!", "Your account is ready.", "sparkles"))
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	sess, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, sessionResponse(sess))
}

// SignOut handles POST /auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(r)
	if !ok {
		common.RespondAppError(w, apperrors.NewUnauthorizedError("sign in required"))
		return
	}

	if err := h.sessions.SignOut(r.Context(), sess); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondWithToast(w, http.StatusOK, nil,
		common.NewToast("Signed out", "See you at the next reunion.", "wave"))
}

// PasswordReset handles POST /auth/password-reset
func (h *AuthHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	if err := h.sessions.SendPasswordReset(r.Context(), req.Email); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondWithToast(w, http.StatusOK, nil,
		common.NewToast("Check your inbox", "A reset link is on its way.", "mail"))
}
