package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/motostats/internal/site"
)

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

type cardStyle int

const (
	cardNormal cardStyle = iota
	cardSelected
	cardEmpty
)

// cardBg returns the background color used inside a card.
func (m Model) cardBg(kind cardStyle) string {
	if kind == cardSelected {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// renderCard draws lines inside a bordered box of the given outer width.
// height is the outer height; zero lets the content decide.
func (m Model) renderCard(lines []string, width, height int, kind cardStyle) string {
	border := lipgloss.RoundedBorder()
	borderColor := m.theme.Border
	switch kind {
	case cardSelected:
		borderColor = m.theme.BorderFocus
	case cardEmpty:
		border = dashedBorder
		borderColor = m.theme.BorderMuted
	}

	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.cardBg(kind))).
		Padding(0, 1).
		Width(max(width-2, 1))
	if height > 2 {
		style = style.Height(height - 2)
	}
	if kind == cardEmpty {
		style = style.Align(lipgloss.Center)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// innerWidth is the usable text width of a card with the given outer width.
func innerWidth(width int) int {
	return max(width-4, 1)
}

// spread places left and right at opposite ends of a line of width w.
func spread(bg BgStyle, left, right string, w int) string {
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + bg.Spaces(gap) + right
}

// renderGrid lays cards out in rows of cols.
func renderGrid(cards []string, cols int) string {
	if cols <= 0 {
		cols = 1
	}
	gap := strings.Repeat(" ", CardGap)
	rows := make([]string, 0, len(cards)/cols+1)
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		row := make([]string, 0, 2*(end-i))
		for j := i; j < end; j++ {
			if j > i {
				row = append(row, gap)
			}
			row = append(row, cards[j])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderHeading renders a page title with its muted subtitle.
func (m Model) renderHeading(title, subtitle string) string {
	styles := m.theme.Styles()
	return styles.Heading.Render(title) + "\n" + styles.MutedText.Render(subtitle)
}

// renderEmptyState renders the dashed card shown for an empty collection.
func (m Model) renderEmptyState(title, body string) string {
	styles := m.theme.Styles().WithBackground(m.cardBg(cardEmpty))
	width := min(m.width, 100)
	lines := []string{
		"",
		styles.Heading.Render(title),
		"",
		styles.MutedText.Render(body),
		"",
		styles.FaintText.Render(site.EmptyAPIOK),
		"",
	}
	return m.renderCard(lines, width, 0, cardEmpty)
}

// renderLoading renders the spinner and label centered in the content area.
func (m Model) renderLoading(label string, height int) string {
	styles := m.theme.Styles()
	body := m.spinner.View() + " " + styles.MutedText.Render(label)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body)
}

// renderFailure renders the fixed failure message and the retry hint.
func (m Model) renderFailure(message string, height int) string {
	styles := m.theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render(site.ErrorIcon+" "+message),
		"",
		styles.AccentText.Render("r")+" "+styles.MutedText.Render(site.RetryLabel),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body)
}

// scroll shows height lines of content, scrolled so that lines
// [focusTop, focusBottom) stay visible.
func (m Model) scroll(content string, height, focusTop, focusBottom int) string {
	vp := viewport.New(m.width, height)
	vp.SetContent(content)
	if focusBottom > height {
		vp.SetYOffset(focusBottom - height)
	}
	if focusTop < vp.YOffset {
		vp.SetYOffset(focusTop)
	}
	return vp.View()
}
