package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/motostats/internal/site"
)

func (m Model) renderHome(height int) string {
	styles := m.theme.Styles()

	hero := lipgloss.JoinVertical(lipgloss.Center,
		styles.Logo.Render(site.BrandIcon+" "+site.HeroTitle),
		styles.MutedText.Render(site.HeroSubtitle),
	)
	hero = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hero)

	cols := min(columnsFor(m.width), 3)
	width := cardWidth(m.width, cols)
	inner := innerWidth(width)
	cardStyles := m.theme.Styles().WithBackground(m.cardBg(cardNormal))

	keyFor := make(map[site.Page]string, len(site.Nav))
	for _, item := range site.Nav {
		keyFor[item.Page] = item.Key
	}

	features := make([]string, 0, len(site.Features))
	for _, f := range site.Features {
		features = append(features, m.renderCard([]string{
			cardStyles.Heading.Render(f.Title),
			cardStyles.MutedText.Width(inner).Render(f.Description),
			"",
			cardStyles.AccentText.Render(keyFor[f.Page]) + cardStyles.Text.Render(" "+f.Action+" →"),
		}, width, 0, cardNormal))
	}

	stats := make([]string, 0, len(site.Stats))
	for _, s := range site.Stats {
		stats = append(stats, m.renderCard([]string{
			cardStyles.MutedText.Render(truncate(s.Title, inner)),
			cardStyles.Heading.Render(s.Value),
			cardStyles.FaintText.Render(truncate(s.Caption, inner)),
		}, width, 0, cardNormal))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		hero,
		"",
		renderGrid(features, cols),
		"",
		renderGrid(stats, cols),
	)
	return m.scroll(content, height, 0, 0)
}
