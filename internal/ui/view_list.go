package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storymap/internal/story"
)

func (m *Model) updateListViewport() {
	m.viewport.SetContent(m.renderListContent())
	m.ensureCursorInViewport(m.list.index)
}

func (m Model) renderListContent() string {
	if !m.loaded {
		return ""
	}
	if len(m.sm.Stories) == 0 {
		return warnStyle.Render("No stories match.")
	}
	width := max(10, m.viewport.Width-2)
	lines := make([]string, len(m.sm.Stories))
	for i, st := range m.sm.Stories {
		content := displayStory(st)
		cursorCell := " "
		if i == m.list.index && m.focus == focusList {
			cursorCell = cursorBarStyle.Render(" ")
			content = cursorLineStyle.Width(width).MaxHeight(1).Render(content)
		} else {
			content = lipgloss.NewStyle().Width(width).MaxHeight(1).Render(content)
		}
		activeCell := " "
		if m.sm.IsActive(st) {
			activeCell = activeBarStyle.Render(" ")
		}
		lines[i] = cursorCell + activeCell + content
	}
	return strings.Join(lines, "\n")
}

// ensureCursorInViewport keeps line within the visible window with a margin.
func (m *Model) ensureCursorInViewport(line int) {
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1

	margin := 3
	if m.viewport.Height < 8 {
		margin = 1
	}
	if line < top+margin {
		m.viewport.SetYOffset(max(0, line-margin))
		return
	}
	if line > bottom-margin {
		m.viewport.SetYOffset(max(0, line-m.viewport.Height+margin+1))
	}
}

func (m Model) renderListPane() string {
	title := fmt.Sprintf("Stories – %d of %d  |  %s", len(m.sm.Stories), len(m.sm.All()), m.sm.Mode)
	style := paneStyle
	if m.focus == focusList && m.state == stateBrowse {
		style = paneFocusStyle
	}
	return style.Width(m.viewport.Width).Render(focusStyle.Render(title) + "\n" + m.viewport.View())
}

func displayStory(st story.Story) string {
	place := st.Place.TypeOfPlace
	if place == "" {
		place = st.Point.Properties.Region
	}
	if place == "" {
		return st.Title
	}
	return fmt.Sprintf("%s  %s", st.Title, helpStyle.Render("("+place+")"))
}
