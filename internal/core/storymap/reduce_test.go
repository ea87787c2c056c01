package storymap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"storymap/internal/story"
)

var ignoreInternals = cmpopts.IgnoreUnexported(State{})

func point(lng, lat float64, region string) story.Point {
	return story.Point{
		Type:       "Feature",
		Geometry:   story.Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		Properties: story.Properties{Region: region},
	}
}

func storyA() story.Story {
	return story.Story{Title: "A", Point: point(1, 2, "North"), Place: story.Place{TypeOfPlace: "Cafe"}, Speakers: []story.Speaker{{Name: "Jo"}}}
}

func storyB() story.Story {
	return story.Story{Title: "B", Point: point(3, 4, "South"), Place: story.Place{TypeOfPlace: "Park"}, Speakers: []story.Speaker{{Name: "Ann"}}}
}

func titles(s State) []string { return story.Titles(s.Stories) }

func TestNewDerivesPointsAndFilterMap(t *testing.T) {
	s := New([]story.Story{storyA(), storyB()})

	if got := len(s.Points.Features); got != 2 {
		t.Fatalf("expected 2 points, got %d", got)
	}
	if diff := cmp.Diff([]string{"North", "South"}, s.FilterMap()[story.CategoryRegion]); diff != "" {
		t.Fatalf("region options mismatch (-want +got):\n%s", diff)
	}
	if s.Mode != ModeUnfiltered {
		t.Fatalf("expected unfiltered, got %v", s.Mode)
	}
}

func TestFilterSelected(t *testing.T) {
	s := New([]story.Story{storyA(), storyB()})
	s = Reduce(s, StoryClicked{Story: storyB()})

	got := Reduce(s, FilterSelected{Category: story.CategoryRegion, Value: "north"})

	if diff := cmp.Diff([]string{"A"}, titles(got)); diff != "" {
		t.Fatalf("stories mismatch (-want +got):\n%s", diff)
	}
	if len(got.PointCoords) != 0 {
		t.Fatalf("expected cleared coords, got %v", got.PointCoords)
	}
	if diff := cmp.Diff(story.PointsFromStories(got.Stories), got.Points); diff != "" {
		t.Fatalf("points not derived from stories:\n%s", diff)
	}
	// prior selection survives the filter
	if got.ActiveStory == nil || got.ActiveStory.Title != "B" {
		t.Fatalf("expected active story B to be kept, got %+v", got.ActiveStory)
	}
	if got.Mode != ModeFilteredByCategory {
		t.Fatalf("expected category mode, got %v", got.Mode)
	}
	if got.Filter != (ActiveFilter{Category: story.CategoryRegion, Value: "north"}) {
		t.Fatalf("unexpected filter %+v", got.Filter)
	}
}

func TestFilterUnknownCategoryIsNoop(t *testing.T) {
	s := New([]story.Story{storyA(), storyB()})
	got := Reduce(s, FilterSelected{Category: "Colour", Value: "red"})
	if diff := cmp.Diff(s, got, ignoreInternals); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestPointClicked(t *testing.T) {
	a := storyA()
	s := New([]story.Story{a, storyB()})

	got := Reduce(s, PointClicked{Point: a.Point, Stories: []story.Story{a}})

	want := State{
		Stories:     []story.Story{a},
		Points:      s.Points,
		ActivePoint: &a.Point,
		ActiveStory: &a,
		PointCoords: []float64{1, 2},
		Mode:        ModeFilteredByPoint,
	}
	if diff := cmp.Diff(want, got, ignoreInternals); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestPointClickedWithUnknownStories(t *testing.T) {
	a := storyA()
	s := New([]story.Story{a, storyB()})
	ghost := story.Story{Title: "ghost", Point: a.Point}

	got := Reduce(s, PointClicked{Point: a.Point, Stories: []story.Story{ghost}})
	if len(got.Stories) != 0 {
		t.Fatalf("expected no stories, got %v", titles(got))
	}
	if got.ActiveStory != nil {
		t.Fatalf("expected no active story, got %+v", got.ActiveStory)
	}
	if got.ActivePoint == nil {
		t.Fatalf("expected active point")
	}
}

func TestStoryClickedDoesNotNarrow(t *testing.T) {
	b := storyB()
	s := New([]story.Story{storyA(), b})

	got := Reduce(s, StoryClicked{Story: b})
	if diff := cmp.Diff([]string{"A", "B"}, titles(got)); diff != "" {
		t.Fatalf("list narrowed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 4}, got.PointCoords); diff != "" {
		t.Fatalf("coords mismatch:\n%s", diff)
	}
	if got.ActivePoint == nil || got.ActivePoint.Properties.Region != "South" {
		t.Fatalf("unexpected active point %+v", got.ActivePoint)
	}
	if !got.IsActive(b) {
		t.Fatalf("expected B active")
	}
}

func TestResetRestoresEverything(t *testing.T) {
	a := storyA()
	s := New([]story.Story{a, storyB()})
	initial := s

	s = Reduce(s, FilterSelected{Category: story.CategorySpeaker, Value: "ANN"})
	s = Reduce(s, PointClicked{Point: a.Point, Stories: []story.Story{a}})
	s = Reduce(s, Reset{})

	if diff := cmp.Diff(initial, s, ignoreInternals); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
	if s.ActivePoint != nil || s.ActiveStory != nil || s.PointCoords != nil {
		t.Fatalf("selection not cleared")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	a := storyA()
	s := New([]story.Story{a, storyB()})

	_ = Reduce(s, PointClicked{Point: a.Point, Stories: []story.Story{a}})
	_ = Reduce(s, FilterSelected{Category: story.CategoryRegion, Value: "South"})

	if diff := cmp.Diff([]string{"A", "B"}, titles(s)); diff != "" {
		t.Fatalf("input state mutated:\n%s", diff)
	}
	if s.ActivePoint != nil {
		t.Fatalf("input state gained an active point")
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := []story.Story{storyA(), storyB()}
	s := New(in)
	in[0].Title = "changed"
	if s.All()[0].Title != "A" {
		t.Fatalf("state shares the caller's slice")
	}
}

func TestPinsFollowPointsAfterPinClick(t *testing.T) {
	a := storyA()
	s := New([]story.Story{a, storyB()})
	s = Reduce(s, PointClicked{Point: a.Point, Stories: []story.Story{a}})

	pins := s.Pins()
	if len(pins) != 2 {
		t.Fatalf("expected both pins to stay on the map, got %d", len(pins))
	}
	if diff := cmp.Diff([]string{"B"}, story.Titles(pins[1].Stories)); diff != "" {
		t.Fatalf("pin stories mismatch:\n%s", diff)
	}
}

func TestDisplayedStoriesDoNotAliasFullList(t *testing.T) {
	s := New([]story.Story{storyA(), storyB()})
	s.Stories[0].Title = "edited"
	if s.All()[0].Title != "A" {
		t.Fatalf("editing displayed stories changed the full list")
	}

	s = Reduce(s, Reset{})
	s.Stories[1].Title = "edited"
	if s.All()[1].Title != "B" {
		t.Fatalf("editing stories after reset changed the full list")
	}

	all := s.All()
	all[0].Title = "edited"
	if s.All()[0].Title != "A" {
		t.Fatalf("All exposes the internal list")
	}
}
