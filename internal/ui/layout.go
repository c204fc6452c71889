package ui

// Terminal width thresholds for the card grid, mirroring the web breakpoints
// (one column on phones up to four on wide screens).
const (
	LayoutTwoColumnWidth   = 70
	LayoutThreeColumnWidth = 110
	LayoutFourColumnWidth  = 150
)

// Card geometry.
const (
	// CardHeight is the rendered height of a rider or race card, borders included.
	CardHeight = 6

	// CardGap is the horizontal space between cards.
	CardGap = 1

	// chromeHeight covers the header, command bar and footer lines.
	chromeHeight = 3
)

// columnsFor returns how many cards fit on one row at the given width.
func columnsFor(width int) int {
	switch {
	case width >= LayoutFourColumnWidth:
		return 4
	case width >= LayoutThreeColumnWidth:
		return 3
	case width >= LayoutTwoColumnWidth:
		return 2
	default:
		return 1
	}
}

// cardWidth returns the width of each card when cols cards share width.
func cardWidth(width, cols int) int {
	if cols <= 0 {
		cols = 1
	}
	w := (width - CardGap*(cols-1)) / cols
	if w < 20 {
		return 20
	}
	return w
}
