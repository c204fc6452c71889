package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/motostats/internal/state"
)

// pageSlot pairs a page with the cancel func of its outstanding fetch.
type pageSlot[T any] struct {
	page   state.Page[T]
	cancel context.CancelFunc
}

func newSlot[T any](message string, opts ...state.PageOption) pageSlot[T] {
	return pageSlot[T]{page: state.NewPage[T](message, opts...)}
}

// begin cancels any fetch in flight and starts a new attempt.
func (s *pageSlot[T]) begin(parent context.Context) (context.Context, state.Ticket) {
	s.stop()
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, s.page.Begin()
}

// resolve applies a completion. Stale completions leave the current fetch
// running.
func (s *pageSlot[T]) resolve(ticket state.Ticket, load state.Load[T]) bool {
	if !s.page.Resolve(ticket, load) {
		return false
	}
	s.stop()
	return true
}

// logFields describes the page for load logging.
func (s *pageSlot[T]) logFields() []zap.Field {
	return []zap.Field{
		zap.Uint64("generation", s.page.Generation()),
		zap.Int("consecutive_failures", s.page.ConsecutiveFailures()),
	}
}

func (s *pageSlot[T]) abandon() {
	s.page.Abandon()
	s.stop()
}

func (s *pageSlot[T]) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// loadedMsg carries the outcome of one fetch back to the update loop.
type loadedMsg[T any] struct {
	view   View
	ticket state.Ticket
	load   state.Load[T]
}

func fetchCmd[T any](ctx context.Context, view View, ticket state.Ticket, fetch func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg[T]{view: view, ticket: ticket, load: state.Run(ctx, fetch)}
	}
}

// activateMsg asks the model to switch to a view and start its fetch.
type activateMsg struct {
	view View
}

func activateCmd(v View) tea.Cmd {
	return func() tea.Msg {
		return activateMsg{view: v}
	}
}
