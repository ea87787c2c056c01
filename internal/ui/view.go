package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}

	header := m.renderHeader()
	var body, footer string
	switch m.state {
	case stateWelcome:
		body = m.viewWelcome()
	case stateSourcePrompt:
		body = m.viewSourcePrompt()
	case stateLoading:
		body = m.viewLoading()
	case stateBrowse:
		body = m.viewBrowse()
		footer = m.renderBrowseFooter()
	case stateFilter:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewFilter(), "  ", m.renderListPane())
		footer = m.renderFilterFooter()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Story Map"))
	if m.cfg.LogoPath != "" {
		b.WriteString("  " + subtleStyle.Render("["+m.cfg.LogoPath+"]"))
	}
	if m.cfg.MapboxStyle != "" {
		b.WriteString("  " + subtitleStyle.Render(m.cfg.MapboxStyle))
	}
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	return b.String()
}

func (m Model) viewBrowse() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderMapPane(), " ", m.renderListPane())
	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderCard())
}

func (m Model) renderBrowseFooter() string {
	status := m.statusMsg
	if f := m.sm.Filter; f.Category != "" && status == "" {
		status = string(f.Category) + ": " + f.Value
	}
	if mt := m.metrics; mt.TotalRequests > 0 {
		status += subtleStyle.Render(fmt.Sprintf("  [%d requests, %d retries]", mt.TotalRequests, mt.TotalRetries))
	}
	return renderFooter(status,
		"tab map/list  |  j/k move  |  Enter select  |  f filter  |  c show all  |  ? intro  |  q quit",
	)
}
