package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"storymap/internal/core/storymap"
)

func (m Model) handleBrowseKey(key string) (Model, tea.Cmd) {
	switch key {
	case "tab":
		if m.focus == focusList {
			m.focus = focusMap
			if m.pins.pinIndex < 0 && len(m.sm.Pins()) > 0 {
				m.pins.pinIndex = 0
			}
		} else {
			m.focus = focusList
		}
		return m, nil
	case "f", "/":
		m.openFilter()
		return m, nil
	case "c", "esc":
		m.dispatch(storymap.Reset{})
		m.list.index = 0
		m.statusMsg = "Showing all stories."
		m.updateListViewport()
		return m, nil
	case "?":
		m.state = stateWelcome
		return m, nil
	}

	if m.focus == focusMap {
		return m.handleMapKey(key)
	}
	return m.handleListKey(key)
}

func (m Model) handleListKey(key string) (Model, tea.Cmd) {
	n := len(m.sm.Stories)
	switch key {
	case "j", "down":
		if m.list.index < n-1 {
			m.list.index++
		}
	case "k", "up":
		if m.list.index > 0 {
			m.list.index--
		}
	case "g", "home":
		m.list.index = 0
	case "G", "end":
		m.list.index = max(0, n-1)
	case "pgdown":
		m.list.index = min(max(0, n-1), m.list.index+m.viewport.Height)
	case "pgup":
		m.list.index = max(0, m.list.index-m.viewport.Height)
	case "enter", " ":
		if n == 0 {
			return m, nil
		}
		st := m.sm.Stories[m.list.index]
		m.dispatch(storymap.StoryClicked{Story: st})
		m.syncPinCursor()
		m.statusMsg = "Selected “" + st.Title + "”."
		return m, nil
	default:
		return m, nil
	}
	m.updateListViewport()
	return m, nil
}

func (m Model) handleMapKey(key string) (Model, tea.Cmd) {
	pins := m.sm.Pins()
	n := len(pins)
	if n == 0 {
		return m, nil
	}
	switch key {
	case "l", "right", "j", "down", "n":
		m.pins.pinIndex = (m.pins.pinIndex + 1) % n
	case "h", "left", "k", "up", "N":
		if m.pins.pinIndex <= 0 {
			m.pins.pinIndex = n - 1
		} else {
			m.pins.pinIndex--
		}
	case "enter", " ":
		if m.pins.pinIndex < 0 || m.pins.pinIndex >= n {
			return m, nil
		}
		pin := pins[m.pins.pinIndex]
		m.dispatch(storymap.PointClicked{Point: pin.Point, Stories: pin.Stories})
		m.list.index = 0
		m.updateListViewport()
		m.statusMsg = pluralStories(len(m.sm.Stories)) + " at this pin."
	}
	return m, nil
}

// syncPinCursor moves the map cursor onto the active point, if shown.
func (m *Model) syncPinCursor() {
	if m.sm.ActivePoint == nil {
		return
	}
	for i, pin := range m.sm.Pins() {
		if pin.Point.Key() == m.sm.ActivePoint.Key() {
			m.pins.pinIndex = i
			return
		}
	}
}
