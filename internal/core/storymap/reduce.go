package storymap

import (
	"slices"

	"storymap/internal/story"
)

// Reduce applies ev to s and returns the resulting state. It never fails:
// unknown events and unknown categories leave the state unchanged.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case FilterSelected:
		return applyFilter(s, ev)
	case PointClicked:
		return clickPoint(s, ev)
	case StoryClicked:
		return clickStory(s, ev)
	case Reset:
		return reset(s)
	default:
		return s
	}
}

// applyFilter replaces the displayed stories and points wholesale. The
// active point and story are kept even if they fall outside the result.
func applyFilter(s State, ev FilterSelected) State {
	if !story.Known(ev.Category) {
		return s
	}
	filtered := story.Filter(s.all, ev.Category, ev.Value)
	s.Stories = filtered
	s.Points = story.PointsFromStories(filtered)
	s.PointCoords = nil
	s.Mode = ModeFilteredByCategory
	s.Filter = ActiveFilter{Category: ev.Category, Value: ev.Value}
	return s
}

// clickPoint narrows the list to the pin's stories, matched by title
// against the full list. Points are left as they were.
func clickPoint(s State, ev PointClicked) State {
	narrowed := story.ByTitles(s.all, story.Titles(ev.Stories))
	s.Stories = narrowed
	s.ActiveStory = nil
	if len(narrowed) > 0 {
		first := narrowed[0]
		s.ActiveStory = &first
	}
	p := ev.Point
	p.Geometry.Coordinates = slices.Clone(p.Geometry.Coordinates)
	s.ActivePoint = &p
	s.PointCoords = slices.Clone(p.Geometry.Coordinates)
	s.Mode = ModeFilteredByPoint
	return s
}

func clickStory(s State, ev StoryClicked) State {
	st := ev.Story
	p := st.Point
	p.Geometry.Coordinates = slices.Clone(p.Geometry.Coordinates)
	s.ActivePoint = &p
	s.ActiveStory = &st
	s.PointCoords = slices.Clone(p.Geometry.Coordinates)
	return s
}

func reset(s State) State {
	s.Stories = slices.Clone(s.all)
	s.Points = story.PointsFromStories(s.all)
	s.PointCoords = nil
	s.ActivePoint = nil
	s.ActiveStory = nil
	s.Mode = ModeUnfiltered
	s.Filter = ActiveFilter{}
	return s
}
