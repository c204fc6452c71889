package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/motostats/internal/site"
)

// renderMain renders header, command bar, the active page and the footer.
func (m Model) renderMain() string {
	contentHeight := max(m.height-chromeHeight, 1)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent(contentHeight))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent(height int) string {
	switch m.currentView {
	case ViewRiders:
		return m.renderRiders(height)
	case ViewRaces:
		return m.renderRaces(height)
	case ViewRiderDetail:
		return m.renderRiderDetail(height)
	case ViewStandings:
		return m.renderStandings(height)
	default:
		return m.renderHome(height)
	}
}

// renderHeader renders the brand mark, the navigation and the backend host.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render(site.BrandIcon+" "+site.BrandName, styles.Logo)}

	active := m.currentView.page()
	for _, item := range site.Nav {
		label := item.Key + " " + item.Label
		if item.Page == active {
			parts = append(parts, styles.Selected.Padding(0, 1).Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, styles.MutedText))
	}

	left := strings.Join(parts, sep)
	if m.apiHost == "" {
		return styles.Header.Width(m.width).Render(left)
	}

	right := bg.Render("api", styles.FaintText) + bg.Space() + bg.Render(m.apiHost, styles.MutedText)
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewRiders:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"r", "Reload"},
			{"esc", "Home"},
		}
	case ViewRaces:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"r", "Reload"},
			{"esc", "Home"},
		}
	case ViewRiderDetail:
		commands = []cmd{
			{"esc", "Riders"},
			{"r", "Reload"},
		}
	case ViewStandings:
		commands = []cmd{
			{"esc", "Home"},
		}
	default:
		commands = []cmd{
			{"1-4", "Pages"},
			{"tab", "Next"},
		}
	}
	commands = append(commands, cmd{"?", "More"}, cmd{"q", "Quit"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	if at := m.updatedAt(); !at.IsZero() {
		segments = append(segments, bg.Render("updated "+at.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Align(lipgloss.Center).Render(site.Footer)
}
