package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/motostats/internal/site"
)

func (m Model) renderStandings(height int) string {
	styles := m.theme.Styles()
	heading := m.renderHeading(site.StandingsTitle, site.StandingsSubtitle) + "\n"
	body := max(height-headingHeight, 1)
	placeholder := lipgloss.Place(m.width, body, lipgloss.Center, lipgloss.Center,
		styles.FaintText.Render(site.StandingsBody))
	return heading + "\n" + placeholder
}
