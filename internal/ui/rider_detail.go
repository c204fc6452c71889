package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

func (m Model) renderRiderDetail(height int) string {
	page := m.rider.page
	switch page.Phase() {
	case state.Loading:
		return m.renderLoading(site.RiderLoading, height)
	case state.Failure:
		return m.renderFailure(page.Message(), height)
	}

	stats := page.Data()
	rider := stats.Rider()
	styles := m.theme.Styles()

	name := styles.Heading.Render(rider.FullName()) + " " + styles.FaintText.Render("#"+strconv.FormatInt(rider.ID, 10))
	lines := []string{name}
	if badge, ok := rider.Badge(); ok {
		lines = append(lines, styles.Badge.Render(badge))
	}
	lines = append(lines,
		styles.MutedText.Render("Status ")+styles.StatusStyle(rider.StatusLabel()).Render(rider.StatusLabel()),
		"",
	)

	cols := min(columnsFor(m.width), 3)
	width := cardWidth(m.width, cols)
	inner := innerWidth(width)
	cardStyles := m.theme.Styles().WithBackground(m.cardBg(cardNormal))
	stat := func(label, value string) string {
		return m.renderCard([]string{
			cardStyles.MutedText.Render(truncate(label, inner)),
			cardStyles.Heading.Render(truncate(value, inner)),
		}, width, 0, cardNormal)
	}
	cards := []string{
		stat("Total Races", strconv.Itoa(stats.TotalRaces)),
		stat("Total Points", stats.TotalPointsLabel()),
		stat("Best Position", stats.BestPositionLabel()),
	}
	lines = append(lines, renderGrid(cards, cols))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.scroll(content, height, 0, 0)
}
