package ui

import (
	"fmt"
	"strconv"

	"github.com/five82/motostats/internal/motogp"
	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

func (m Model) renderRaces(height int) string {
	page := m.races.page

	subtitle := site.RacesSubtitle
	if n := len(page.Data()); page.Phase() == state.Success && n > 0 {
		subtitle += fmt.Sprintf(" (%d races)", n)
	}
	heading := m.renderHeading(site.RacesTitle, subtitle) + "\n"
	body := max(height-headingHeight, 1)

	switch {
	case page.Phase() == state.Loading:
		return heading + "\n" + m.renderLoading(site.RacesLoading, body)
	case page.Phase() == state.Failure:
		return heading + "\n" + m.renderFailure(page.Message(), body)
	case state.Empty(page):
		return heading + "\n" + m.renderEmptyState(site.RacesEmptyTitle, site.RacesEmptyBody)
	}

	races := page.Data()
	cols := columnsFor(m.width)
	width := cardWidth(m.width, cols)
	cards := make([]string, len(races))
	for i, r := range races {
		cards[i] = m.renderRaceCard(r, width, i == m.selectedRace)
	}
	top := (m.selectedRace / cols) * CardHeight
	return heading + "\n" + m.scroll(renderGrid(cards, cols), body, top, top+CardHeight)
}

func (m Model) renderRaceCard(r motogp.RaceCircuit, width int, selected bool) string {
	kind := cardNormal
	if selected {
		kind = cardSelected
	}
	bgColor := m.cardBg(kind)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := innerWidth(width)

	id := "#" + strconv.FormatInt(r.ID, 10)
	circuit := truncate(r.CircuitLabel(), inner-len(id)-1)

	lines := []string{
		spread(bg, bg.Render(circuit, styles.Heading), bg.Render(id, styles.FaintText), inner),
		bg.Render(r.DateLabel(), styles.AccentText),
		"",
		spread(bg, bg.Render("Season", styles.MutedText), bg.Render(strconv.FormatInt(r.SeasonID, 10), styles.Text), inner),
	}
	return m.renderCard(lines, width, CardHeight, kind)
}
