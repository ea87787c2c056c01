package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storymap/internal/source"
)

// ---------- Messages / Cmds ----------
type loadedMsg struct {
	res source.Result
	err error
}

func (m Model) loadStoriesCmd() tea.Cmd {
	ref := m.cfg.StoriesSource
	opt := source.Options{Token: m.cfg.BackendToken}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := source.Load(ctx, ref, opt)
		return loadedMsg{res: res, err: err}
	}
}
