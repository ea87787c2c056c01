package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"storymap/internal/config"
	"storymap/internal/infra/logx"
)

// InitialModel builds the model from the rc file at path. A non-empty
// sourceOverride replaces the configured story source.
func InitialModel(path, sourceOverride string) Model {
	cfg, err := config.Load(path)
	hasFile := err == nil
	if sourceOverride != "" {
		cfg.StoriesSource = sourceOverride
	}
	logx.RegisterSecret(cfg.MapboxAccessToken)
	logx.RegisterSecret(cfg.BackendToken)

	m := Model{
		state:  stateWelcome,
		cfg:    cfg,
		hasRC:  hasFile,
		rcPath: path,
	}
	if cfg.StoriesSource == "" {
		m.statusMsg = "No story source configured – press Enter to set one."
	} else {
		m.statusMsg = "Stories from " + cfg.StoriesSource + " – press Enter to open the map."
	}

	ti := textinput.New()
	ti.Placeholder = "stories.json, stories.yaml or https://…/stories.json"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()
	m.ti = ti

	si := textinput.New()
	si.Placeholder = "Fuzzy search…"
	si.CharLimit = 100
	si.Width = 30
	m.filter.searchInput = si
	m.filterCfg = FilterConfig{
		MinCoverage: 0.6,
		MaxSpread:   40,
		MaxResults:  200,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle
	m.spinner = sp

	m.viewport = viewport.New(40, 10)
	m.pins.pinIndex = -1
	m.setWrapWidth(60)

	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setWrapWidth rebuilds the markdown renderer when the card width changes.
func (m *Model) setWrapWidth(w int) {
	if w < 20 {
		w = 20
	}
	if w == m.wrapWidth && m.renderer != nil {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		logx.Warnf("markdown renderer unavailable: %v", err)
		m.renderer = nil
		return
	}
	m.renderer = r
	m.wrapWidth = w
}
