package viewstate

import (
	"fmt"

	"reunion-backend/domain/core/valueobjects"
)

// View is one of the fixed top-level views of the archive UI.
type View string

const (
	ViewTimeline View = "timeline"
	ViewSubmit   View = "submit"
	ViewInvite   View = "invite"
	ViewAccount  View = "account"
	ViewAbout    View = "about"
)

// Views lists every top-level view.
var Views = []View{ViewTimeline, ViewSubmit, ViewInvite, ViewAccount, ViewAbout}

// ContributionType controls whether the submission form shows an
// attachment zone.
type ContributionType string

const (
	ContributionPhoto ContributionType = "photo"
	ContributionVideo ContributionType = "video"
	ContributionStory ContributionType = "story"
)

// ContributionTypes lists every contribution type.
var ContributionTypes = []ContributionType{ContributionPhoto, ContributionVideo, ContributionStory}

// State holds the active view, decade and contribution type. Invariant:
// exactly one of each is active at all times; transitions are validated
// replacements.
type State struct {
	View         View                          `json:"view"`
	Decade       valueobjects.Decade           `json:"decade"`
	Contribution ContributionType              `json:"contribution"`
}

// New returns the initial state: timeline view, first decade, story form.
func New() State {
	return State{
		View:         ViewTimeline,
		Decade:       valueobjects.Decades[0],
		Contribution: ContributionStory,
	}
}

// SetView activates a view, rejecting unknown labels.
func (s *State) SetView(v View) error {
	for _, known := range Views {
		if known == v {
			s.View = v
			return nil
		}
	}
	return fmt.Errorf("unknown view %q", v)
}

// SetDecade activates a decade, rejecting labels outside the eight periods.
func (s *State) SetDecade(d valueobjects.Decade) error {
	if !valueobjects.IsValidDecade(string(d)) {
		return fmt.Errorf("unknown decade %q", d)
	}
	s.Decade = d
	return nil
}

// SetContribution activates a contribution type.
func (s *State) SetContribution(c ContributionType) error {
	for _, known := range ContributionTypes {
		if known == c {
			s.Contribution = c
			return nil
		}
	}
	return fmt.Errorf("unknown contribution type %q", c)
}

// ShowsAttachmentZone reports whether the active contribution type accepts
// file attachments.
func (s State) ShowsAttachmentZone() bool {
	return s.Contribution != ContributionStory
}
