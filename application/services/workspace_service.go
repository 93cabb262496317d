package services

import (
	"sync"

	"reunion-backend/domain/core/validators"
	"reunion-backend/domain/core/valueobjects"
	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/viewstate"
)

// Workspace is the per-user client state the original kept in the browser:
// the active view/decade/contribution selection and the invite addresses
// staged before a batch send.
type Workspace struct {
	State         viewstate.State `json:"state"`
	StagedInvites []string        `json:"staged_invites"`
}

// WorkspaceService holds workspaces in process memory, created lazily on
// first touch and dropped at sign-out. Nothing here survives a restart;
// that matches the session-scoped nature of the original state.
type WorkspaceService struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewWorkspaceService creates an empty workspace registry.
func NewWorkspaceService() *WorkspaceService {
	return &WorkspaceService{workspaces: make(map[string]*Workspace)}
}

// Get returns a snapshot of the user's workspace.
func (s *WorkspaceService) Get(userID string) Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.workspace(userID))
}

// SetView activates a top-level view.
func (s *WorkspaceService) SetView(userID string, view viewstate.View) (Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	if err := ws.State.SetView(view); err != nil {
		return snapshot(ws), apperrors.NewValidationError(err.Error())
	}
	return snapshot(ws), nil
}

// SetDecade activates a timeline decade.
func (s *WorkspaceService) SetDecade(userID string, decade valueobjects.Decade) (Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	if err := ws.State.SetDecade(decade); err != nil {
		return snapshot(ws), apperrors.NewValidationError(err.Error())
	}
	return snapshot(ws), nil
}

// SetContribution activates a contribution type.
func (s *WorkspaceService) SetContribution(userID string, c viewstate.ContributionType) (Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	if err := ws.State.SetContribution(c); err != nil {
		return snapshot(ws), apperrors.NewValidationError(err.Error())
	}
	return snapshot(ws), nil
}

// StageInvite appends a recipient address, rejecting malformed addresses
// and duplicates already staged.
func (s *WorkspaceService) StageInvite(userID, email string) (Workspace, error) {
	email = validators.NormalizeEmail(email)
	if err := validators.ValidateEmail(email); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return snapshot(s.workspace(userID)), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	for _, staged := range ws.StagedInvites {
		if staged == email {
			return snapshot(ws), apperrors.NewConflictError("address is already on the list")
		}
	}
	ws.StagedInvites = append(ws.StagedInvites, email)
	return snapshot(ws), nil
}

// UnstageInvite removes a recipient address by exact match.
func (s *WorkspaceService) UnstageInvite(userID, email string) Workspace {
	email = validators.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	kept := ws.StagedInvites[:0]
	for _, staged := range ws.StagedInvites {
		if staged != email {
			kept = append(kept, staged)
		}
	}
	ws.StagedInvites = kept
	return snapshot(ws)
}

// TakeStagedInvites returns the staged list and clears it. The send flow
// calls this so a sent batch is never sent twice.
func (s *WorkspaceService) TakeStagedInvites(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	staged := ws.StagedInvites
	ws.StagedInvites = nil
	return staged
}

// RestoreStagedInvites puts addresses back after a failed send.
func (s *WorkspaceService) RestoreStagedInvites(userID string, emails []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	ws.StagedInvites = append(emails, ws.StagedInvites...)
}

// Drop discards a user's workspace at sign-out.
func (s *WorkspaceService) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, userID)
}

// workspace returns the live workspace for a user, creating it on first
// touch. Callers hold s.mu.
func (s *WorkspaceService) workspace(userID string) *Workspace {
	ws, ok := s.workspaces[userID]
	if !ok {
		ws = &Workspace{State: viewstate.New()}
		s.workspaces[userID] = ws
	}
	return ws
}

func snapshot(ws *Workspace) Workspace {
	out := Workspace{State: ws.State}
	out.StagedInvites = append([]string(nil), ws.StagedInvites...)
	return out
}
