package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"storymap/internal/source"
	"storymap/internal/story"
)

func testPoint(lng, lat float64, region string) story.Point {
	return story.Point{
		Type:       "Feature",
		Geometry:   story.Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		Properties: story.Properties{Region: region},
	}
}

// testStories: A and C share a location, B stands alone.
func testStories() []story.Story {
	return []story.Story{
		{Title: "A", Point: testPoint(1, 2, "North"), Place: story.Place{TypeOfPlace: "Cafe"},
			Speakers: []story.Speaker{{Name: "Jo"}}},
		{Title: "B", Point: testPoint(3, 4, "South"), Place: story.Place{TypeOfPlace: "Park"},
			Speakers: []story.Speaker{{Name: "Ann"}}},
		{Title: "C", Point: testPoint(1, 2, "North"), Place: story.Place{TypeOfPlace: "Pier"},
			Speakers: []story.Speaker{{Name: "Ann"}, {Name: "Bo"}}},
	}
}

func newTestModel(t *testing.T, sourceRef string) Model {
	t.Helper()
	t.Setenv("STORYMAP_SOURCE", "")
	t.Setenv("STORIES_SOURCE", "")
	return InitialModel(filepath.Join(t.TempDir(), ".storymaprc"), sourceRef)
}

// loadedModel returns a sized model in the browse state with testStories loaded.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t, "stories.json")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(loadedMsg{res: source.Result{Stories: testStories()}})
	m = updated.(Model)
	if m.state != stateBrowse {
		t.Fatalf("expected stateBrowse, got %v", m.state)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func titles(stories []story.Story) []string {
	return story.Titles(stories)
}
