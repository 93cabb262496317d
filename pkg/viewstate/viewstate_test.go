package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, ViewTimeline, s.View)
	assert.Equal(t, "1950s", s.Decade.String())
	assert.Equal(t, ContributionStory, s.Contribution)
}

func TestSetView(t *testing.T) {
	s := New()

	for _, v := range Views {
		require.NoError(t, s.SetView(v))
		assert.Equal(t, v, s.View)
	}

	err := s.SetView(View("dashboard"))
	require.Error(t, err)
	// Rejected transition leaves the last valid view active.
	assert.Equal(t, Views[len(Views)-1], s.View)
}

func TestSetDecade(t *testing.T) {
	s := New()

	require.NoError(t, s.SetDecade("1990s"))
	assert.Equal(t, "1990s", s.Decade.String())

	require.Error(t, s.SetDecade("1890s"))
	assert.Equal(t, "1990s", s.Decade.String())
}

func TestSetContribution(t *testing.T) {
	s := New()

	require.NoError(t, s.SetContribution(ContributionPhoto))
	assert.Equal(t, ContributionPhoto, s.Contribution)

	require.Error(t, s.SetContribution(ContributionType("audio")))
	assert.Equal(t, ContributionPhoto, s.Contribution)
}

func TestShowsAttachmentZone(t *testing.T) {
	s := New()
	assert.False(t, s.ShowsAttachmentZone())

	require.NoError(t, s.SetContribution(ContributionPhoto))
	assert.True(t, s.ShowsAttachmentZone())

	require.NoError(t, s.SetContribution(ContributionVideo))
	assert.True(t, s.ShowsAttachmentZone())
}
