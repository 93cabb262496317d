package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "reunion-backend/pkg/errors"
	"reunion-backend/pkg/viewstate"
)

func TestWorkspaceService_DefaultsOnFirstTouch(t *testing.T) {
	svc := NewWorkspaceService()

	ws := svc.Get("user-1")

	assert.Equal(t, viewstate.ViewTimeline, ws.State.View)
	assert.Equal(t, "1950s", ws.State.Decade.String())
	assert.Equal(t, viewstate.ContributionStory, ws.State.Contribution)
	assert.Empty(t, ws.StagedInvites)
}

func TestWorkspaceService_SetViewValidation(t *testing.T) {
	svc := NewWorkspaceService()

	ws, err := svc.SetView("user-1", viewstate.ViewInvite)
	require.NoError(t, err)
	assert.Equal(t, viewstate.ViewInvite, ws.State.View)

	// Unknown view is rejected and the state is unchanged.
	ws, err = svc.SetView("user-1", viewstate.View("settings"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, viewstate.ViewInvite, ws.State.View)
}

func TestWorkspaceService_StageInvite_DuplicateRejected(t *testing.T) {
	svc := NewWorkspaceService()

	_, err := svc.StageInvite("user-1", "pat@example.com")
	require.NoError(t, err)

	// Same address again, differently cased.
	ws, err := svc.StageInvite("user-1", "PAT@Example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, []string{"pat@example.com"}, ws.StagedInvites)
}

func TestWorkspaceService_StageInvite_MalformedUnchanged(t *testing.T) {
	svc := NewWorkspaceService()

	ws, err := svc.StageInvite("user-1", "not-an-email")

	require.Error(t, err)
	assert.Empty(t, ws.StagedInvites)
}

func TestWorkspaceService_TakeAndRestore(t *testing.T) {
	svc := NewWorkspaceService()

	_, err := svc.StageInvite("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = svc.StageInvite("user-1", "b@example.com")
	require.NoError(t, err)

	taken := svc.TakeStagedInvites("user-1")
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, taken)
	assert.Empty(t, svc.Get("user-1").StagedInvites)

	svc.RestoreStagedInvites("user-1", taken)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, svc.Get("user-1").StagedInvites)
}

func TestWorkspaceService_UnstageInvite(t *testing.T) {
	svc := NewWorkspaceService()

	_, err := svc.StageInvite("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = svc.StageInvite("user-1", "b@example.com")
	require.NoError(t, err)

	ws := svc.UnstageInvite("user-1", "a@example.com")
	assert.Equal(t, []string{"b@example.com"}, ws.StagedInvites)

	// Removing an absent address is a no-op.
	ws = svc.UnstageInvite("user-1", "missing@example.com")
	assert.Equal(t, []string{"b@example.com"}, ws.StagedInvites)
}

func TestWorkspaceService_DropResets(t *testing.T) {
	svc := NewWorkspaceService()

	_, err := svc.SetView("user-1", viewstate.ViewSubmit)
	require.NoError(t, err)
	_, err = svc.StageInvite("user-1", "a@example.com")
	require.NoError(t, err)

	svc.Drop("user-1")

	ws := svc.Get("user-1")
	assert.Equal(t, viewstate.ViewTimeline, ws.State.View)
	assert.Empty(t, ws.StagedInvites)
}
