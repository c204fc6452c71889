package ui

import (
	"fmt"
	"strconv"

	"github.com/five82/motostats/internal/motogp"
	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

// headingHeight covers the title, subtitle and the blank line below them.
const headingHeight = 3

func (m Model) renderRiders(height int) string {
	page := m.riders.page

	subtitle := site.RidersSubtitle
	if n := len(page.Data()); page.Phase() == state.Success && n > 0 {
		subtitle += fmt.Sprintf(" (%d riders)", n)
	}
	heading := m.renderHeading(site.RidersTitle, subtitle) + "\n"
	body := max(height-headingHeight, 1)

	switch {
	case page.Phase() == state.Loading:
		return heading + "\n" + m.renderLoading(site.RidersLoading, body)
	case page.Phase() == state.Failure:
		return heading + "\n" + m.renderFailure(page.Message(), body)
	case state.Empty(page):
		return heading + "\n" + m.renderEmptyState(site.RidersEmptyTitle, site.RidersEmptyBody)
	}

	riders := page.Data()
	cols := columnsFor(m.width)
	width := cardWidth(m.width, cols)
	cards := make([]string, len(riders))
	for i, r := range riders {
		cards[i] = m.renderRiderCard(r, width, i == m.selectedRider)
	}
	top := (m.selectedRider / cols) * CardHeight
	return heading + "\n" + m.scroll(renderGrid(cards, cols), body, top, top+CardHeight)
}

func (m Model) renderRiderCard(r motogp.Rider, width int, selected bool) string {
	kind := cardNormal
	if selected {
		kind = cardSelected
	}
	bgColor := m.cardBg(kind)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := innerWidth(width)

	id := "#" + strconv.FormatInt(r.ID, 10)
	status := r.StatusLabel()
	name := truncate(r.FullName(), inner-len(id)-1)

	badgeLine := ""
	if badge, ok := r.Badge(); ok {
		badgeLine = styles.Badge.Render(truncate(badge, inner-2))
	}

	lines := []string{
		spread(bg, bg.Render(name, styles.Heading), bg.Render(id, styles.FaintText), inner),
		badgeLine,
		"",
		spread(bg, bg.Render("Status", styles.MutedText), bg.Render(status, styles.StatusStyle(status)), inner),
	}
	return m.renderCard(lines, width, CardHeight, kind)
}
