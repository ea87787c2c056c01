package storymap

import "storymap/internal/story"

// Event is an input to Reduce.
type Event interface{ isEvent() }

// FilterSelected applies a category filter chosen from a dropdown.
type FilterSelected struct {
	Category story.Category
	Value    string
}

// PointClicked selects a map pin together with the stories shown for it.
type PointClicked struct {
	Point   story.Point
	Stories []story.Story
}

// StoryClicked selects a story from the list.
type StoryClicked struct {
	Story story.Story
}

// Reset restores the full story list and clears the selection.
type Reset struct{}

func (FilterSelected) isEvent() {}
func (PointClicked) isEvent()   {}
func (StoryClicked) isEvent()   {}
func (Reset) isEvent()          {}
