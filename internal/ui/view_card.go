package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"storymap/internal/story"
)

// renderCard shows the active story: place, speakers and the markdown
// description.
func (m Model) renderCard() string {
	st := m.sm.ActiveStory
	if st == nil {
		return subtleStyle.Render("Select a story or a pin to read it.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(st.Title) + "\n")

	var where []string
	if st.Place.Name != "" {
		where = append(where, st.Place.Name)
	}
	if st.Place.TypeOfPlace != "" {
		where = append(where, st.Place.TypeOfPlace)
	}
	if r := st.Point.Properties.Region; r != "" {
		where = append(where, r)
	}
	where = append(where, story.FormatCoords(st.Point.Geometry.Coordinates))
	b.WriteString(subtitleStyle.Render(strings.Join(where, " · ")) + "\n")

	if len(st.Speakers) > 0 {
		t := tree.Root("Speakers")
		for _, name := range st.SpeakerNames() {
			t.Child(name)
		}
		b.WriteString(t.String() + "\n")
	}

	if d := strings.TrimSpace(st.Description); d != "" {
		b.WriteString(m.renderMarkdown(d))
	}

	if near, km, ok := story.Nearest(story.Pins(m.sm.All()), st.Point); ok {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Nearest other place: %s, %.1f km", pinLabel(near), km)) + "\n")
	}
	if u := m.cfg.User(); u.Name != "" {
		b.WriteString(subtleStyle.Render("Signed in as "+u.Name) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md + "\n"
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md + "\n"
	}
	return strings.Trim(out, "\n") + "\n"
}
