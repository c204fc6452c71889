package state

import (
	"context"
	"time"
)

// Phase is the lifecycle stage of a data-bound page.
type Phase int

const (
	// Loading is the initial phase and the phase after every Begin.
	Loading Phase = iota
	// Success means the latest attempt returned data.
	Success
	// Failure means the latest attempt failed.
	Failure
)

func (p Phase) String() string {
	switch p {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "loading"
	}
}

// Load is the tagged outcome of one fetch.
type Load[T any] struct {
	Phase Phase
	Data  T
	Err   error
}

// Loaded wraps data as a successful outcome.
func Loaded[T any](data T) Load[T] {
	return Load[T]{Phase: Success, Data: data}
}

// Failed wraps err as a failed outcome.
func Failed[T any](err error) Load[T] {
	return Load[T]{Phase: Failure, Err: err}
}

// Run performs fetch once and converts its result into a Load.
func Run[T any](ctx context.Context, fetch func(context.Context) (T, error)) Load[T] {
	data, err := fetch(ctx)
	if err != nil {
		return Failed[T](err)
	}
	return Loaded(data)
}

// Ticket identifies one attempt started by Page.Begin.
type Ticket uint64

// PageOption customizes a Page.
type PageOption func(*pageConfig)

type pageConfig struct {
	detail func(error) string
}

// WithDetail appends the text returned by detail (when non-empty) to the
// failure message. Without it every failure shows the same fixed message.
func WithDetail(detail func(error) string) PageOption {
	return func(c *pageConfig) {
		c.detail = detail
	}
}

// Page holds the view state of one data-bound page: the data from the last
// successful attempt, the phase of the current attempt, and the user-facing
// failure message. Pages are plain values owned by a single goroutine.
type Page[T any] struct {
	failureMessage string
	detail         func(error) string

	phase       Phase
	data        T
	message     string
	lastErr     error
	generation  uint64
	outstanding bool
	failures    int
	updated     time.Time
}

// NewPage returns a page in the Loading phase. failureMessage is the text
// shown for every failed attempt regardless of the underlying error.
func NewPage[T any](failureMessage string, opts ...PageOption) Page[T] {
	var cfg pageConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return Page[T]{
		failureMessage: failureMessage,
		detail:         cfg.detail,
		phase:          Loading,
	}
}

// Begin starts a new attempt: the page moves to Loading and every ticket
// handed out earlier becomes stale.
func (p *Page[T]) Begin() Ticket {
	p.generation++
	p.outstanding = true
	p.phase = Loading
	p.message = ""
	return Ticket(p.generation)
}

// Resolve applies the outcome of the attempt identified by t. It returns false
// and leaves the page untouched when t is stale or was abandoned.
//
// Success replaces the data and clears the message. Failure sets the fixed
// message and keeps the data from the last success (or the zero value).
func (p *Page[T]) Resolve(t Ticket, l Load[T]) bool {
	if !p.outstanding || uint64(t) != p.generation {
		return false
	}
	p.outstanding = false
	p.updated = time.Now()

	switch l.Phase {
	case Success:
		p.phase = Success
		p.data = l.Data
		p.message = ""
		p.lastErr = nil
		p.failures = 0
	default:
		p.phase = Failure
		p.failures++
		p.lastErr = l.Err
		p.message = p.failureText(l.Err)
	}
	return true
}

// Abandon invalidates the outstanding attempt, if any. Its completion will be
// discarded by Resolve.
func (p *Page[T]) Abandon() {
	if !p.outstanding {
		return
	}
	p.generation++
	p.outstanding = false
}

// Phase returns the current phase.
func (p Page[T]) Phase() Phase { return p.phase }

// Data returns the data from the last successful attempt.
func (p Page[T]) Data() T { return p.data }

// Message returns the user-facing failure message; empty unless in Failure.
func (p Page[T]) Message() string { return p.message }

// Err returns the error behind the current failure, for diagnostics only.
func (p Page[T]) Err() error { return p.lastErr }

// Pending reports whether an attempt is in flight.
func (p Page[T]) Pending() bool { return p.outstanding }

// Generation returns the number of attempts started or abandoned so far.
func (p Page[T]) Generation() uint64 { return p.generation }

// ConsecutiveFailures counts failed attempts since the last success.
func (p Page[T]) ConsecutiveFailures() int { return p.failures }

// Updated returns when the last attempt completed.
func (p Page[T]) Updated() time.Time { return p.updated }

func (p Page[T]) failureText(err error) string {
	if p.detail == nil || err == nil {
		return p.failureMessage
	}
	if d := p.detail(err); d != "" {
		return p.failureMessage + " (" + d + ")"
	}
	return p.failureMessage
}

// Empty reports whether a list page loaded successfully with no entities.
func Empty[E any](p Page[[]E]) bool {
	return p.phase == Success && len(p.data) == 0
}
