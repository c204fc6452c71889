// Package app is the composition root for motostats.
//
// It loads configuration (defaults, config.toml, .env and MOTOSTATS_*
// variables, then flags), builds the zap logger and the API client, and
// starts one of the front ends:
//
//	RunTUI ──> logging.File ──> api.New ──> prefs.Load ──> ui.Run
//	Serve  ──> logging.Stderr ─> api.New ──> web.New ──> http.Server
//
// The TUI logs to a file because Bubble Tea owns the terminal. Serve runs the
// HTTP server and the shutdown watcher in an errgroup and stops gracefully
// within 15 seconds of ctx being cancelled.
//
// Open is also used by the one-shot CLI commands, which need a client and a
// stderr logger but no front end.
package app
