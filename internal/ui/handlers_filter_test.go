package ui

import (
	"reflect"
	"strings"
	"testing"

	"storymap/internal/core/storymap"
	"storymap/internal/story"
)

func TestFilterDropdownAppliesValue(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "f")
	if m.state != stateFilter || m.filter.step != stepCategory {
		t.Fatalf("expected category step, got state %v step %v", m.state, m.filter.step)
	}
	if m.currentCategory() != story.CategoryRegion {
		t.Fatalf("expected Region first, got %v", m.currentCategory())
	}

	m = press(t, m, "enter")
	if m.filter.step != stepValue {
		t.Fatalf("expected value step")
	}
	if got := m.currentOptions(); !reflect.DeepEqual(got, []string{"North", "South"}) {
		t.Fatalf("unexpected options %v", got)
	}

	m = press(t, m, "j", "enter")
	if m.state != stateBrowse {
		t.Fatalf("expected stateBrowse, got %v", m.state)
	}
	if got := titles(m.sm.Stories); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("expected [B], got %v", got)
	}
	want := storymap.ActiveFilter{Category: story.CategoryRegion, Value: "South"}
	if m.sm.Filter != want {
		t.Fatalf("expected filter %+v, got %+v", want, m.sm.Filter)
	}
	if m.sm.PointCoords != nil {
		t.Fatalf("expected coords cleared, got %v", m.sm.PointCoords)
	}
	if !strings.Contains(m.statusMsg, "1 story") {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
}

func TestFilterKeepsSelection(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "enter") // click A
	m = press(t, m, "f", "enter", "j", "enter")

	if m.sm.ActiveStory == nil || m.sm.ActiveStory.Title != "A" {
		t.Fatalf("expected active story A to survive the filter, got %+v", m.sm.ActiveStory)
	}
	if m.sm.PointCoords != nil {
		t.Fatalf("expected coords cleared, got %v", m.sm.PointCoords)
	}
}

func TestFilterSearchNarrowsSpeakers(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "f", "j", "j")
	if m.currentCategory() != story.CategorySpeaker {
		t.Fatalf("expected Speaker, got %v", m.currentCategory())
	}
	m = press(t, m, "enter", "/")
	if !m.filter.searching {
		t.Fatalf("expected search mode")
	}

	m = press(t, m, "b", "o")
	if m.filter.query != "bo" {
		t.Fatalf("expected query bo, got %q", m.filter.query)
	}
	if !reflect.DeepEqual(m.filter.filteredIdx, []int{1}) {
		t.Fatalf("expected only Bo, got %v", m.filter.filteredIdx)
	}

	m = press(t, m, "enter")
	if got := titles(m.sm.Stories); !reflect.DeepEqual(got, []string{"C"}) {
		t.Fatalf("expected [C], got %v", got)
	}
	if m.filter.searching {
		t.Fatalf("expected search mode closed")
	}
}

func TestFilterSearchEsc(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "f", "enter", "/", "x", "y", "z")
	if len(m.filter.filteredIdx) != 0 {
		t.Fatalf("expected no options, got %v", m.filter.filteredIdx)
	}

	// enter with nothing selectable leaves the state alone
	m = press(t, m, "enter")
	if m.state != stateFilter || m.statusMsg != "Nothing to select." {
		t.Fatalf("expected to stay in filter, got state %v status %q", m.state, m.statusMsg)
	}

	m = press(t, m, "/", "x", "esc")
	if m.filter.query != "" || len(m.filter.filteredIdx) != 2 {
		t.Fatalf("expected cleared query, got %q %v", m.filter.query, m.filter.filteredIdx)
	}
	m = press(t, m, "esc")
	if m.filter.searching {
		t.Fatalf("expected search closed")
	}
	m = press(t, m, "esc")
	if m.filter.step != stepCategory {
		t.Fatalf("expected category step")
	}
	m = press(t, m, "esc")
	if m.state != stateBrowse {
		t.Fatalf("expected stateBrowse, got %v", m.state)
	}
}
