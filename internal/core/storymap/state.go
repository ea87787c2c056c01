// Package storymap is the story-map view state and its reducer. State is
// an immutable value: every event produces a new State and leaves the old
// one untouched, so the UI can apply events synchronously from its loop.
package storymap

import (
	"slices"

	"storymap/internal/story"
)

// Mode is the coarse view the user is in.
type Mode int

const (
	ModeUnfiltered Mode = iota
	ModeFilteredByCategory
	ModeFilteredByPoint
)

func (m Mode) String() string {
	switch m {
	case ModeFilteredByCategory:
		return "filtered by category"
	case ModeFilteredByPoint:
		return "filtered by point"
	default:
		return "all stories"
	}
}

// ActiveFilter records the category filter that produced the current view.
type ActiveFilter struct {
	Category story.Category
	Value    string
}

// State is the complete view state derived from the full story list.
type State struct {
	all       []story.Story
	filterMap story.FilterMap

	Stories     []story.Story
	Points      story.FeatureCollection
	ActivePoint *story.Point
	ActiveStory *story.Story
	PointCoords []float64
	Mode        Mode
	Filter      ActiveFilter
}

// New builds the initial state for a fixed story list.
func New(all []story.Story) State {
	all = slices.Clone(all)
	return State{
		all:       all,
		filterMap: story.BuildFilterMap(all),
		Stories:   slices.Clone(all),
		Points:    story.PointsFromStories(all),
		Mode:      ModeUnfiltered,
	}
}

// All returns a copy of the full story list supplied at construction.
func (s State) All() []story.Story { return slices.Clone(s.all) }

// FilterMap returns the dropdown options per category.
func (s State) FilterMap() story.FilterMap { return s.filterMap }

// Pins returns the map markers for the displayed points. Each pin carries
// every story told at its location, not only the displayed ones.
func (s State) Pins() []story.Pin { return story.PinsFor(s.Points, s.all) }

// IsActive reports whether st is the active story.
func (s State) IsActive(st story.Story) bool {
	return s.ActiveStory != nil && s.ActiveStory.Title == st.Title
}
