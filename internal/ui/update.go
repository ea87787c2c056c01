package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storymap/internal/config"
	"storymap/internal/core/storymap"
	"storymap/internal/infra/logx"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			m.state = stateQuit
			return m, tea.Quit
		}
		// text inputs own every other key while focused
		switch {
		case m.state == stateSourcePrompt:
			return m.handleSourcePromptKey(msg)
		case m.state == stateFilter && m.filter.searching:
			return m.handleFilterSearchKey(msg)
		}
		if key == "q" {
			m.state = stateQuit
			return m, tea.Quit
		}

		switch m.state {
		case stateWelcome:
			return m.handleWelcomeKey(key)
		case stateLoading:
			return m, nil
		case stateBrowse:
			return m.handleBrowseKey(key)
		case stateFilter:
			return m.handleFilterKey(key)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.statusMsg = "Loading failed: " + msg.err.Error()
			logx.Errorf("load stories: %v", msg.err)
			m.state = stateWelcome
			return m, nil
		}
		m.loadErr = nil
		m.sm = storymap.New(msg.res.Stories)
		m.loaded = true
		m.rejected = len(msg.res.Rejected)
		m.metrics = msg.res.Metrics
		m.list.index = 0
		m.pins.pinIndex = -1
		m.statusMsg = fmt.Sprintf("%d stories loaded.", len(msg.res.Stories))
		if m.rejected > 0 {
			m.statusMsg += fmt.Sprintf(" %d skipped (see log).", m.rejected)
		}
		if m.typedSource != "" && m.typedSource == m.cfg.StoriesSource {
			if err := config.SaveSource(m.cfg, m.typedSource); err != nil {
				logx.Warnf("save config: %v", err)
			} else {
				m.hasRC = true
			}
			m.typedSource = ""
		}
		m.state = stateBrowse
		m.updateListViewport()
		return m, nil

	case spinner.TickMsg:
		if m.state == stateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// dispatch applies a reducer event and re-syncs the panes with the result.
func (m *Model) dispatch(ev storymap.Event) {
	m.sm = storymap.Reduce(m.sm, ev)
	logx.Debug("event", eventFields(ev, m.sm))
	m.clampCursors()
	m.updateListViewport()
}

func (m *Model) clampCursors() {
	if n := len(m.sm.Stories); m.list.index >= n {
		m.list.index = max(0, n-1)
	}
	if m.pins.pinIndex >= len(m.sm.Pins()) {
		m.pins.pinIndex = -1
	}
}

func eventFields(ev storymap.Event, s storymap.State) logx.Fields {
	f := logx.Fields{
		"event":   fmt.Sprintf("%T", ev),
		"mode":    s.Mode.String(),
		"stories": len(s.Stories),
		"points":  len(s.Points.Features),
	}
	if s.ActiveStory != nil {
		f["active_story"] = s.ActiveStory.Title
	}
	return f
}

// resize distributes the terminal between map, list and card.
func (m *Model) resize() {
	mw, mh := m.mapSize()
	m.viewport.Width = max(20, m.width-mw-4)
	m.viewport.Height = mh
	m.setWrapWidth(m.width - 6)
	m.updateListViewport()
}

// mapSize returns the inner size of the map pane.
func (m Model) mapSize() (int, int) {
	w := m.width/2 - 2
	if w < 20 {
		w = 20
	}
	const chrome = 6 // header + footer
	h := (m.height - chrome) / 2
	if h < 6 {
		h = 6
	}
	return w, h
}
