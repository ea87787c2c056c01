package ui

import (
	"strconv"
	"strings"

	"storymap/internal/story"
)

// viewFilter renders the dropdown: categories on the first level, the
// category's values (optionally fuzzy-narrowed) on the second.
func (m Model) viewFilter() string {
	var b strings.Builder
	cats := story.Categories()
	fm := m.sm.FilterMap()

	if m.filter.step == stepCategory {
		b.WriteString(focusStyle.Render("Filter by") + "\n")
		for i, c := range cats {
			line := string(c) + subtleStyle.Render(" ("+strconv.Itoa(len(fm[c]))+")")
			if i == m.filter.catIndex {
				b.WriteString(optionSelectedStyle.Render("▸ "+line) + "\n")
			} else {
				b.WriteString(optionStyle.Render("  "+line) + "\n")
			}
		}
		return dropdownStyle.Render(strings.TrimSuffix(b.String(), "\n"))
	}

	cat := m.currentCategory()
	opts := fm[cat]
	b.WriteString(focusStyle.Render(string(cat)) + "\n")
	if m.filter.searching {
		b.WriteString(m.filter.searchInput.View() + "\n")
	} else if m.filter.query != "" {
		b.WriteString(subtleStyle.Render("search: "+m.filter.query) + "\n")
	}
	if len(m.filter.filteredIdx) == 0 {
		b.WriteString(warnStyle.Render("no values"))
		return dropdownStyle.Render(b.String())
	}

	_, h := m.mapSize()
	start := 0
	if m.filter.valueIndex >= h {
		start = m.filter.valueIndex - h + 1
	}
	end := min(len(m.filter.filteredIdx), start+h)
	for vi := start; vi < end; vi++ {
		v := opts[m.filter.filteredIdx[vi]]
		if vi == m.filter.valueIndex {
			b.WriteString(optionSelectedStyle.Render("▸ "+v) + "\n")
		} else {
			b.WriteString(optionStyle.Render("  "+v) + "\n")
		}
	}
	return dropdownStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) renderFilterFooter() string {
	if m.filter.step == stepCategory {
		return renderFooter(m.statusMsg, "j/k move  |  Enter open  |  Esc close")
	}
	return renderFooter(m.statusMsg, "j/k move  |  / search  |  Enter apply  |  Esc back")
}
