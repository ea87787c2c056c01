package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- UI Styles ---
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#E07A5F"))
	subtitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#81B29A")).Italic(true)
	subtleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	warnStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle      = lipgloss.NewStyle().Bold(true)
	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	cursorBarStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#FFAB78"))
	activeBarStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#E07A5F"))
	popupStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E07A5F")).
			Padding(1, 2).
			Margin(1, 0)
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	paneFocusStyle = paneStyle.BorderForeground(lipgloss.Color("#81B29A"))
	dropdownStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#81B29A")).
			Padding(0, 1)
	optionSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#3D405B")).
				Padding(0, 1)
	optionStyle = lipgloss.NewStyle().Padding(0, 1)

	pinStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#81B29A"))
	pinActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E07A5F")).Bold(true)
	pinCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CC8F")).Bold(true)
)

const (
	glyphPin       = "•"
	glyphPinActive = "◉"
	glyphPinCursor = "◎"
	glyphCluster   = "●"
)

// renderFooter creates a consistent footer across all views.
func renderFooter(statusLine string, helpLines ...string) string {
	var b strings.Builder
	if statusLine != "" {
		b.WriteString(subtleStyle.Render(statusLine) + "\n")
	}
	for _, line := range helpLines {
		b.WriteString(helpStyle.Render(line) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
