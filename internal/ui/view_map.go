package ui

import (
	"fmt"
	"strings"

	"storymap/internal/story"
)

// renderMap draws the displayed points on a w×h grid. The active point and
// the map cursor are highlighted; several stories at one pin show as a
// filled dot.
func (m Model) renderMap(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	pins := m.sm.Pins()
	rect := story.Bounds(m.sm.Points)
	put := func(p story.Point, glyph string) {
		x, y := story.Project(rect, story.LatLng(p), w, h)
		grid[y][x] = glyph
	}

	for _, pin := range pins {
		g := glyphPin
		if len(pin.Stories) > 1 {
			g = glyphCluster
		}
		put(pin.Point, pinStyle.Render(g))
	}
	if m.focus == focusMap && m.pins.pinIndex >= 0 && m.pins.pinIndex < len(pins) {
		put(pins[m.pins.pinIndex].Point, pinCursorStyle.Render(glyphPinCursor))
	}
	if ap := m.sm.ActivePoint; ap != nil && !rect.IsEmpty() && rect.ContainsLatLng(story.LatLng(*ap)) {
		put(*ap, pinActiveStyle.Render(glyphPinActive))
	}

	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderMapPane() string {
	w, h := m.mapSize()
	style := paneStyle
	if m.focus == focusMap {
		style = paneFocusStyle
	}
	return style.Width(w).Render(m.mapTitle() + "\n" + m.renderMap(w, h))
}

func (m Model) mapTitle() string {
	pins := m.sm.Pins()
	label := fmt.Sprintf("Map – %d pins", len(pins))
	if m.focus == focusMap && m.pins.pinIndex >= 0 && m.pins.pinIndex < len(pins) {
		pin := pins[m.pins.pinIndex]
		label = fmt.Sprintf("Pin %d/%d – %s (%s)", m.pins.pinIndex+1, len(pins),
			pinLabel(pin), pluralStories(len(pin.Stories)))
	}
	if len(m.sm.PointCoords) == 2 {
		label += "  " + subtleStyle.Render("@ "+story.FormatCoords(m.sm.PointCoords))
	}
	return focusStyle.Render(label)
}

func pinLabel(pin story.Pin) string {
	switch {
	case pin.Point.Properties.Name != "":
		return pin.Point.Properties.Name
	case pin.Point.Properties.Region != "":
		return pin.Point.Properties.Region
	default:
		return story.FormatCoords(pin.Point.Geometry.Coordinates)
	}
}
