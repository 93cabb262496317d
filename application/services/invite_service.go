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
)

// Invite send statuses.
const (
	InviteCreated   = "created"
	InviteDuplicate = "duplicate"
	InviteInvalid   = "invalid"
	InviteFailed    = "failed"
)

// InviteSendResult is the per-address outcome of a batch send.
type InviteSendResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// InviteService turns a staged recipient list into pending invite records.
// One pending invite may exist per address; mail dispatch belongs to
// server-side infrastructure and never happens here.
type InviteService struct {
	docs        ports.DocumentStore
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewInviteService creates an invite service.
func NewInviteService(docs ports.DocumentStore, callTimeout time.Duration, logger *zap.Logger) *InviteService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &InviteService{
		docs:        docs,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// SendBatch creates one pending invite per staged address, skipping
// addresses that are malformed or already hold a pending invite. One
// address's failure never aborts the rest of the batch.
func (s *InviteService) SendBatch(ctx context.Context, sess valueobjects.Session, emails []string, message string) ([]InviteSendResult, error) {
	if sess.IsGuest() {
		return nil, apperrors.NewUnauthorizedError("sign in to send invites")
	}
	if len(emails) == 0 {
		return nil, apperrors.NewValidationError("no addresses staged")
	}

	results := make([]InviteSendResult, 0, len(emails))
	for _, raw := range emails {
		email := validators.NormalizeEmail(raw)
		results = append(results, s.sendOne(ctx, sess, email, message))
	}
	return results, nil
}

// ListPending returns the caller's pending invites, newest first.
func (s *InviteService) ListPending(ctx context.Context, sess valueobjects.Session, limit, offset int) ([]*entities.Invite, error) {
	if sess.IsGuest() {
		return nil, apperrors.NewUnauthorizedError("sign in to view invites")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	results, err := s.docs.Query(callCtx, entities.CollectionInvites, ports.Query{
		Eq: map[string]string{
			"inviter_id": sess.UserID,
			"status":     entities.InviteStatusPending,
		},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list invites")
	}

	invites := make([]*entities.Invite, 0, len(results))
	for _, r := range results {
		invites = append(invites, entities.InviteFromDocument(r.ID, r.Fields))
	}
	return invites, nil
}

func (s *InviteService) sendOne(ctx context.Context, sess valueobjects.Session, email, message string) InviteSendResult {
	if err := validators.ValidateEmail(email); err != nil {
		return InviteSendResult{Email: email, Status: InviteInvalid, Error: apperrors.GetAppError(err).Message}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	existing, err := s.docs.Query(callCtx, entities.CollectionInvites, ports.Query{
		Eq: map[string]string{
			"email":  email,
			"status": entities.InviteStatusPending,
		},
		Limit: 1,
	})
	if err != nil {
		s.logger.Error("invite uniqueness lookup failed", zap.String("email", email), zap.Error(err))
		return InviteSendResult{Email: email, Status: InviteFailed, Error: err.Error()}
	}
	if len(existing) > 0 {
		return InviteSendResult{Email: email, Status: InviteDuplicate}
	}

	_, err = s.docs.Create(callCtx, entities.CollectionInvites, entities.NewInviteFields(email, message, sess, time.Now()))
	if err != nil {
		s.logger.Error("invite creation failed", zap.String("email", email), zap.Error(err))
		return InviteSendResult{Email: email, Status: InviteFailed, Error: err.Error()}
	}

	return InviteSendResult{Email: email, Status: InviteCreated}
}
