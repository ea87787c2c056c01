package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"storymap/internal/config"
	"storymap/internal/core/storymap"
	"storymap/internal/source"
)

// --- Model / State ---
type state int

const (
	stateWelcome state = iota
	stateSourcePrompt
	stateLoading
	stateBrowse
	stateFilter
	stateQuit
)

// focus selects which browse pane receives navigation keys.
type focus int

const (
	focusList focus = iota
	focusMap
)

// filterStep is the position inside the two-level filter dropdown.
type filterStep int

const (
	stepCategory filterStep = iota
	stepValue
)

type FilterState struct {
	step       filterStep
	catIndex   int
	valueIndex int

	// fuzzy narrowing of the value list
	searching   bool
	searchInput textinput.Model
	query       string
	filteredIdx []int // visible value index -> index in FilterMap values
}

type ListState struct {
	index int
}

type MapState struct {
	pinIndex int // highlighted pin, -1 for none
}

type Model struct {
	state     state
	cfg       config.Config
	hasRC     bool
	rcPath    string
	statusMsg string
	loadErr   error
	width     int
	height    int

	spinner spinner.Model
	// story list pane
	viewport viewport.Model
	// source input
	ti textinput.Model
	// typedSource is the source entered at the prompt, saved once it loads
	typedSource string

	sm       storymap.State
	loaded   bool
	rejected int
	metrics  source.MetricsSnapshot

	focus     focus
	list      ListState
	pins      MapState
	filter    FilterState
	filterCfg FilterConfig

	// markdown renderer for story descriptions; nil falls back to plain text
	renderer  *glamour.TermRenderer
	wrapWidth int
}
