package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storymap/internal/core/storymap"
	"storymap/internal/story"
)

func (m *Model) openFilter() {
	m.state = stateFilter
	m.filter.step = stepCategory
	m.filter.valueIndex = 0
	m.resetFilterSearch()
}

func (m *Model) resetFilterSearch() {
	m.filter.searching = false
	m.filter.query = ""
	m.filter.searchInput.SetValue("")
	m.filter.searchInput.Blur()
	m.filter.filteredIdx = narrowOptions("", m.currentOptions(), m.filterCfg)
}

// currentCategory is the category under the dropdown cursor.
func (m Model) currentCategory() story.Category {
	cats := story.Categories()
	if m.filter.catIndex < 0 || m.filter.catIndex >= len(cats) {
		return cats[0]
	}
	return cats[m.filter.catIndex]
}

func (m Model) currentOptions() []string {
	return m.sm.FilterMap()[m.currentCategory()]
}

func (m Model) handleFilterKey(key string) (Model, tea.Cmd) {
	if m.filter.step == stepCategory {
		return m.handleCategoryKey(key)
	}
	return m.handleValueKey(key)
}

func (m Model) handleCategoryKey(key string) (Model, tea.Cmd) {
	n := len(story.Categories())
	switch key {
	case "j", "down":
		if m.filter.catIndex < n-1 {
			m.filter.catIndex++
		}
	case "k", "up":
		if m.filter.catIndex > 0 {
			m.filter.catIndex--
		}
	case "enter", "l", "right":
		m.filter.step = stepValue
		m.filter.valueIndex = 0
		m.resetFilterSearch()
	case "esc", "h", "left", "f":
		m.state = stateBrowse
	}
	return m, nil
}

func (m Model) handleValueKey(key string) (Model, tea.Cmd) {
	n := len(m.filter.filteredIdx)
	switch key {
	case "j", "down":
		if m.filter.valueIndex < n-1 {
			m.filter.valueIndex++
		}
	case "k", "up":
		if m.filter.valueIndex > 0 {
			m.filter.valueIndex--
		}
	case "/":
		m.filter.searching = true
		cmd := m.filter.searchInput.Focus()
		return m, cmd
	case "enter":
		return m.applySelectedValue()
	case "esc", "h", "left":
		m.filter.step = stepCategory
		m.resetFilterSearch()
	}
	return m, nil
}

// handleFilterSearchKey feeds the fuzzy search input and narrows live.
func (m Model) handleFilterSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if strings.TrimSpace(m.filter.searchInput.Value()) == "" {
			m.resetFilterSearch()
			return m, nil
		}
		m.filter.searchInput.SetValue("")
		m.filter.query = ""
		m.filter.filteredIdx = narrowOptions("", m.currentOptions(), m.filterCfg)
		m.filter.valueIndex = 0
		return m, nil
	case "enter":
		m.filter.searching = false
		m.filter.searchInput.Blur()
		return m.applySelectedValue()
	case "up", "down":
		m.filter.searching = false
		m.filter.searchInput.Blur()
		return m.handleValueKey(msg.String())
	default:
		var cmd tea.Cmd
		m.filter.searchInput, cmd = m.filter.searchInput.Update(msg)
		if q := strings.TrimSpace(m.filter.searchInput.Value()); q != m.filter.query {
			m.filter.query = q
			m.filter.filteredIdx = narrowOptions(q, m.currentOptions(), m.filterCfg)
			m.filter.valueIndex = 0
		}
		return m, cmd
	}
}

func (m Model) applySelectedValue() (Model, tea.Cmd) {
	opts := m.currentOptions()
	if len(m.filter.filteredIdx) == 0 || m.filter.valueIndex >= len(m.filter.filteredIdx) {
		m.statusMsg = "Nothing to select."
		return m, nil
	}
	value := opts[m.filter.filteredIdx[m.filter.valueIndex]]
	cat := m.currentCategory()

	m.dispatch(storymap.FilterSelected{Category: cat, Value: value})
	m.list.index = 0
	m.pins.pinIndex = -1
	m.updateListViewport()
	m.state = stateBrowse
	m.resetFilterSearch()
	m.statusMsg = fmt.Sprintf("%s: %s – %s.", cat, value, pluralStories(len(m.sm.Stories)))
	return m, nil
}

func pluralStories(n int) string {
	if n == 1 {
		return "1 story"
	}
	return fmt.Sprintf("%d stories", n)
}
