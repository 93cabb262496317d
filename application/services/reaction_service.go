package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/domain/core/entities"
	"reunion-backend/domain/core/valueobjects"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/lock"
	"reunion-backend/pkg/utils"
)

// Reaction toggle states.
const (
	ReactionAdded    = "added"
	ReactionRemoved  = "removed"
	ReactionSwitched = "switched"
)

// ToggleResult reports what a toggle did.
type ToggleResult struct {
	State string                    `json:"state"`
	Kind  valueobjects.ReactionKind `json:"kind"`
}

// ReactionService enforces "at most one reaction kind per (memory, user)".
// The per-user lookup and the counter mutations run under a keyed lock so
// two concurrent toggles for the same pair cannot interleave.
type ReactionService struct {
	docs        ports.DocumentStore
	locks       *lock.KeyedMutex
	logger      *zap.Logger
	callTimeout time.Duration
}

// NewReactionService creates a reaction service.
func NewReactionService(docs ports.DocumentStore, callTimeout time.Duration, logger *zap.Logger) *ReactionService {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &ReactionService{
		docs:        docs,
		locks:       lock.NewKeyedMutex(),
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// Toggle applies toggle-off / switch / toggle-on semantics:
//   - same kind already held: remove the join record, decrement its counter
//   - different kind held: decrement old, repoint the join record, increment new
//   - nothing held: create the join record, increment the counter
func (s *ReactionService) Toggle(ctx context.Context, sess valueobjects.Session, memoryID string, kind valueobjects.ReactionKind) (*ToggleResult, error) {
	if sess.IsGuest() {
		return nil, apperrors.NewUnauthorizedError("sign in to react")
	}
	if !valueobjects.IsValidReaction(kind.String()) {
		return nil, apperrors.NewValidationError("unknown reaction kind")
	}

	key := memoryID + "/" + sess.UserID
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if _, err := s.docs.Get(callCtx, entities.CollectionMemories, memoryID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("memory")
		}
		return nil, apperrors.Wrap(err, "load memory")
	}

	existingID, existingKind, err := s.findExisting(callCtx, memoryID, sess.UserID)
	if err != nil {
		return nil, apperrors.Wrap(err, "look up reaction")
	}

	switch {
	case existingID != "" && existingKind == kind:
		// Toggle-off.
		if err := s.docs.Delete(callCtx, entities.CollectionReactions, existingID); err != nil {
			return nil, apperrors.Wrap(err, "remove reaction")
		}
		if err := s.docs.Increment(callCtx, entities.CollectionMemories, memoryID, kind.CounterField(), -1); err != nil {
			return nil, apperrors.Wrap(err, "decrement reaction counter")
		}
		return &ToggleResult{State: ReactionRemoved, Kind: kind}, nil

	case existingID != "":
		// Switch.
		if err := s.docs.Increment(callCtx, entities.CollectionMemories, memoryID, existingKind.CounterField(), -1); err != nil {
			return nil, apperrors.Wrap(err, "decrement old reaction counter")
		}
		if err := s.docs.Patch(callCtx, entities.CollectionReactions, existingID, entities.Document{"kind": kind.String()}); err != nil {
			return nil, apperrors.Wrap(err, "repoint reaction")
		}
		if err := s.docs.Increment(callCtx, entities.CollectionMemories, memoryID, kind.CounterField(), 1); err != nil {
			return nil, apperrors.Wrap(err, "increment reaction counter")
		}
		return &ToggleResult{State: ReactionSwitched, Kind: kind}, nil

	default:
		// Toggle-on.
		_, err := s.docs.Create(callCtx, entities.CollectionReactions, entities.Document{
			"memory_id":  memoryID,
			"user_id":    sess.UserID,
			"kind":       kind.String(),
			"created_at": utils.NowRFC3339(),
		})
		if err != nil {
			return nil, apperrors.Wrap(err, "create reaction")
		}
		if err := s.docs.Increment(callCtx, entities.CollectionMemories, memoryID, kind.CounterField(), 1); err != nil {
			return nil, apperrors.Wrap(err, "increment reaction counter")
		}
		return &ToggleResult{State: ReactionAdded, Kind: kind}, nil
	}
}

// findExisting returns the caller's current reaction on a memory, if any.
func (s *ReactionService) findExisting(ctx context.Context, memoryID, userID string) (string, valueobjects.ReactionKind, error) {
	results, err := s.docs.Query(ctx, entities.CollectionReactions, ports.Query{
		Eq:    map[string]string{"memory_id": memoryID, "user_id": userID},
		Limit: 1,
	})
	if err != nil {
		return "", "", err
	}
	if len(results) == 0 {
		return "", "", nil
	}

	doc := results[0]
	kind, _ := doc.Fields["kind"].(string)
	return doc.ID, valueobjects.ReactionKind(kind), nil
}
