package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/validators"
	"reunion-backend/domain/core/valueobjects"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/utils"
)

// SignUpCommand carries the registration form.
type SignUpCommand struct {
	Email            string `validate:"required,email"`
	Password         string `validate:"required,min=8,max=72"`
	DisplayName      string `validate:"required,min=1,max=100"`
	GraduationDecade string `validate:"omitempty,decade"`
}

// SessionService wraps the identity provider. Sessions come back as
// explicit values; nothing here keeps ambient signed-in state.
type SessionService struct {
	identity    ports.IdentityProvider
	workspaces  *WorkspaceService
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewSessionService creates a session service.
func NewSessionService(identity ports.IdentityProvider, workspaces *WorkspaceService, callTimeout time.Duration, logger *zap.Logger) *SessionService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &SessionService{
		identity:    identity,
		workspaces:  workspaces,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// SignUp registers a new user with the identity provider.
func (s *SessionService) SignUp(ctx context.Context, cmd SignUpCommand) (valueobjects.Session, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.Session{}, apperrors.NewValidationError(err.Error())
	}

	attrs := entities.Document{"display_name": cmd.DisplayName}
	if cmd.GraduationDecade != "" {
		attrs["graduation_decade"] = cmd.GraduationDecade
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	sess, err := s.identity.SignUp(callCtx, validators.NormalizeEmail(cmd.Email), cmd.Password, cmd.DisplayName, attrs)
	if err != nil {
		if ctxErr := apperrors.FromContext(callCtx, "sign up"); ctxErr != nil {
			return valueobjects.Session{}, ctxErr
		}
		return valueobjects.Session{}, apperrors.NewExternalError("auth", err)
	}

	s.logger.Info("user signed up", zap.String("userID", sess.UserID))
	return sess, nil
}

// SignIn exchanges credentials for a session.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (valueobjects.Session, error) {
	if err := validators.ValidateEmail(email); err != nil {
		return valueobjects.Session{}, err
	}
	if password == "" {
		return valueobjects.Session{}, apperrors.NewValidationError("password is required")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	sess, err := s.identity.SignIn(callCtx, validators.NormalizeEmail(email), password)
	if err != nil {
		if ctxErr := apperrors.FromContext(callCtx, "sign in"); ctxErr != nil {
			return valueobjects.Session{}, ctxErr
		}
		return valueobjects.Session{}, apperrors.NewUnauthorizedError("invalid email or password").WithCause(err)
	}

	return sess, nil
}

// SignOut revokes the session and drops the user's workspace.
func (s *SessionService) SignOut(ctx context.Context, sess valueobjects.Session) error {
	if sess.IsGuest() {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.identity.SignOut(callCtx, sess.AccessToken); err != nil {
		// The workspace is dropped regardless; a failed revocation still
		// ends the session client-side.
		s.logger.Warn("sign-out revocation failed", zap.String("userID", sess.UserID), zap.Error(err))
	}
	s.workspaces.Drop(sess.UserID)
	return nil
}

// SendPasswordReset asks the provider to mail a reset link.
func (s *SessionService) SendPasswordReset(ctx context.Context, email string) error {
	if err := validators.ValidateEmail(email); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.identity.SendPasswordReset(callCtx, validators.NormalizeEmail(email)); err != nil {
		if ctxErr := apperrors.FromContext(callCtx, "password reset"); ctxErr != nil {
			return ctxErr
		}
		return apperrors.NewExternalError("auth", err)
	}
	return nil
}
