package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleWelcomeKey(key string) (Model, tea.Cmd) {
	switch key {
	case "enter":
		if m.loaded {
			m.state = stateBrowse
			return m, nil
		}
		if m.cfg.StoriesSource == "" {
			m.state = stateSourcePrompt
			m.statusMsg = "Enter a story file or backend URL."
			cmd := m.ti.Focus()
			return m, cmd
		}
		return m.startLoading()
	case "s":
		m.ti.SetValue(m.cfg.StoriesSource)
		m.state = stateSourcePrompt
		cmd := m.ti.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSourcePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateWelcome
		m.statusMsg = "Back to the intro."
		return m, nil
	case "enter":
		ref := strings.TrimSpace(m.ti.Value())
		if ref == "" {
			m.statusMsg = "Source is empty."
			return m, nil
		}
		m.cfg.StoriesSource = ref
		m.typedSource = ref
		return m.startLoading()
	default:
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
}

func (m Model) startLoading() (Model, tea.Cmd) {
	m.state = stateLoading
	m.statusMsg = "Loading stories from " + m.cfg.StoriesSource + "…"
	return m, tea.Batch(m.spinner.Tick, m.loadStoriesCmd())
}
