// Package ui provides the terminal front end for motostats.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program styled with Lipgloss. Four top-level pages
// mirror the web routes (Home, Riders, Races, Standings) and a rider detail
// page opens from the Riders grid. The interface is read-only.
//
// # Package Structure
//
//   - app.go: Model, key handling, page activation and Run
//   - loader.go: per-page fetch slots and the commands that deliver results
//   - chrome.go: header navigation, command bar and footer
//   - cards.go: card, grid, empty, loading and failure rendering
//   - home.go, riders.go, races.go, rider_detail.go, standings.go: page bodies
//   - theme.go, style_helpers.go, layout.go: colors and geometry
//   - keys.go, help.go: bindings and the help overlay
//
// # Loading Model
//
// Each data-bound page owns a state.Page. Entering the page (or pressing r)
// calls Begin, which returns a ticket and starts a fetch under a cancellable
// context. The fetch runs as a tea.Cmd and comes back as a loadedMsg carrying
// the ticket. Leaving the page abandons the attempt and cancels its context,
// so a late result is dropped by Resolve instead of overwriting newer state.
//
// Failures always show the page's fixed message. The backend's error detail
// is appended only when the show_error_detail option is set.
//
// # Key Bindings
//
//   - 1-4, Tab, Shift+Tab: switch pages
//   - j/k/h/l or arrows: move the card selection
//   - Enter: open the selected rider
//   - r: reload the current page
//   - T: cycle theme (persisted to prefs.toml)
//   - Esc: back
//   - ?: help
//   - q or Ctrl+C: quit
package ui
