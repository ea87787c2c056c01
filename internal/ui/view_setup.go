package ui

import (
	"fmt"
	"strings"
)

// viewWelcome is the intro popup shown on start and on "?".
func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to the Story Map") + "\n\n")
	b.WriteString("Stories are pinned where they were told. Browse them on the map,\n")
	b.WriteString("filter by region, type of place or speaker, and pick a pin to read\n")
	b.WriteString("everything told at that place.\n\n")

	if m.cfg.StoriesSource != "" {
		b.WriteString(okStyle.Render("✓ Source: "+m.cfg.StoriesSource) + "\n")
	} else {
		b.WriteString(warnStyle.Render("! No story source (~/.storymaprc, STORYMAP_SOURCE or --stories)") + "\n")
	}
	if m.cfg.MapboxAccessToken != "" {
		b.WriteString(okStyle.Render("✓ Mapbox token configured") + "\n")
	}
	if m.hasRC {
		b.WriteString(subtleStyle.Render("Config: "+m.rcPath) + "\n")
	}
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(m.loadErr.Error()) + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render(m.statusMsg) + "\n\n")
	b.WriteString(helpStyle.Render("Enter continue  |  s change source  |  q quit"))
	return popupStyle.Render(b.String())
}

func (m Model) viewSourcePrompt() string {
	var b strings.Builder
	b.WriteString("Where should the stories come from?\n\n")
	b.WriteString(m.ti.View() + "\n\n")
	if m.statusMsg != "" {
		b.WriteString(subtleStyle.Render(m.statusMsg) + "\n\n")
	}
	b.WriteString(helpStyle.Render("Enter load  |  Esc back"))
	return b.String()
}

func (m Model) viewLoading() string {
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), m.statusMsg, helpStyle.Render("q quit"))
}
