package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type rider struct {
	ID   int64
	Name string
}

func TestNewPage_StartsLoading(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	if p.Phase() != Loading {
		t.Fatalf("Phase = %v, want loading", p.Phase())
	}
	if p.Message() != "" || p.Data() != nil {
		t.Fatalf("new page carries message %q data %v", p.Message(), p.Data())
	}
	if Empty(p) {
		t.Fatalf("Empty = true while loading")
	}
}

func TestPage_SuccessReplacesData(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	ticket := p.Begin()
	if !p.Resolve(ticket, Loaded([]rider{{ID: 1, Name: "Marc"}})) {
		t.Fatalf("Resolve returned false for current ticket")
	}
	if p.Phase() != Success {
		t.Fatalf("Phase = %v, want success", p.Phase())
	}
	if len(p.Data()) != 1 || p.Data()[0].Name != "Marc" {
		t.Fatalf("Data = %v, want Marc", p.Data())
	}
	if p.Pending() {
		t.Fatalf("Pending = true after resolve")
	}
	if p.Updated().IsZero() {
		t.Fatalf("Updated not set")
	}
}

func TestPage_FailureUsesFixedMessage(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	ticket := p.Begin()
	cause := errors.New("dial tcp: connection refused")
	p.Resolve(ticket, Failed[[]rider](cause))

	if p.Phase() != Failure {
		t.Fatalf("Phase = %v, want failure", p.Phase())
	}
	if p.Message() != "Failed to load riders. Please try again later." {
		t.Fatalf("Message = %q", p.Message())
	}
	if !errors.Is(p.Err(), cause) {
		t.Fatalf("Err = %v, want %v", p.Err(), cause)
	}
	if Empty(p) {
		t.Fatalf("Empty = true on failure")
	}
}

func TestPage_EmptySuccess(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	p.Resolve(p.Begin(), Loaded([]rider{}))
	if !Empty(p) {
		t.Fatalf("Empty = false for zero riders")
	}
	if p.Message() != "" {
		t.Fatalf("Message = %q, want empty", p.Message())
	}
}

func TestPage_FailureKeepsPreviousData(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	p.Resolve(p.Begin(), Loaded([]rider{{ID: 7}}))
	p.Resolve(p.Begin(), Failed[[]rider](errors.New("boom")))

	if p.Phase() != Failure {
		t.Fatalf("Phase = %v, want failure", p.Phase())
	}
	if len(p.Data()) != 1 || p.Data()[0].ID != 7 {
		t.Fatalf("Data = %v, want previous rider", p.Data())
	}
}

func TestPage_ConsecutiveFailures(t *testing.T) {
	p := NewPage[rider](RiderFailure)
	p.Resolve(p.Begin(), Failed[rider](errors.New("one")))
	p.Resolve(p.Begin(), Failed[rider](errors.New("two")))
	if p.ConsecutiveFailures() != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", p.ConsecutiveFailures())
	}
	p.Resolve(p.Begin(), Loaded(rider{ID: 1}))
	if p.ConsecutiveFailures() != 0 {
		t.Fatalf("ConsecutiveFailures = %d after success, want 0", p.ConsecutiveFailures())
	}
}

func TestPage_StaleTicketIsDiscarded(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	first := p.Begin()
	second := p.Begin()

	if !p.Resolve(second, Loaded([]rider{{ID: 2}})) {
		t.Fatalf("Resolve(second) returned false")
	}
	if p.Resolve(first, Failed[[]rider](errors.New("late"))) {
		t.Fatalf("Resolve(first) applied a stale result")
	}
	if p.Phase() != Success || p.Data()[0].ID != 2 {
		t.Fatalf("page = %v %v, want success with rider 2", p.Phase(), p.Data())
	}
}

func TestPage_ResolveTwiceIgnoresSecond(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	ticket := p.Begin()
	p.Resolve(ticket, Loaded([]rider{{ID: 1}}))
	if p.Resolve(ticket, Failed[[]rider](errors.New("again"))) {
		t.Fatalf("second Resolve with same ticket was applied")
	}
	if p.Phase() != Success {
		t.Fatalf("Phase = %v, want success", p.Phase())
	}
}

func TestPage_AbandonDropsOutstanding(t *testing.T) {
	p := NewPage[[]rider](RidersFailure)
	ticket := p.Begin()
	p.Abandon()
	if p.Pending() {
		t.Fatalf("Pending = true after Abandon")
	}
	if p.Resolve(ticket, Loaded([]rider{{ID: 1}})) {
		t.Fatalf("Resolve applied a result after Abandon")
	}
	if p.Phase() != Loading {
		t.Fatalf("Phase = %v, want loading", p.Phase())
	}

	gen := p.Generation()
	p.Abandon()
	if p.Generation() != gen {
		t.Fatalf("Abandon without outstanding attempt changed generation")
	}
}

func TestPage_WithDetailAppendsText(t *testing.T) {
	detail := func(err error) string { return err.Error() }
	p := NewPage[rider](RiderFailure, WithDetail(detail))
	p.Resolve(p.Begin(), Failed[rider](errors.New("Rider not found")))
	want := "Failed to load rider. Please try again later. (Rider not found)"
	if p.Message() != want {
		t.Fatalf("Message = %q, want %q", p.Message(), want)
	}

	empty := NewPage[rider](RiderFailure, WithDetail(func(error) string { return "" }))
	empty.Resolve(empty.Begin(), Failed[rider](errors.New("x")))
	if empty.Message() != RiderFailure {
		t.Fatalf("Message = %q, want fixed message when detail is empty", empty.Message())
	}
}

func TestPage_LoadingAndFailureNeverCoexist(t *testing.T) {
	p := NewPage[[]rider](RacesFailure)
	steps := []Load[[]rider]{
		Failed[[]rider](errors.New("a")),
		Loaded([]rider{}),
		Failed[[]rider](errors.New("b")),
		Loaded([]rider{{ID: 1}}),
	}
	for i, step := range steps {
		ticket := p.Begin()
		if p.Phase() != Loading || p.Message() != "" {
			t.Fatalf("step %d: after Begin phase %v message %q", i, p.Phase(), p.Message())
		}
		p.Resolve(ticket, step)
		if p.Phase() == Loading {
			t.Fatalf("step %d: still loading after resolve", i)
		}
		if (p.Phase() == Failure) != (p.Message() != "") {
			t.Fatalf("step %d: phase %v with message %q", i, p.Phase(), p.Message())
		}
	}
}

func TestRun_WrapsFetch(t *testing.T) {
	ok := Run(context.Background(), func(context.Context) (int, error) { return 3, nil })
	if ok.Phase != Success || ok.Data != 3 || ok.Err != nil {
		t.Fatalf("Run ok = %+v", ok)
	}

	boom := errors.New("boom")
	bad := Run(context.Background(), func(context.Context) (int, error) { return 0, boom })
	if bad.Phase != Failure || !errors.Is(bad.Err, boom) {
		t.Fatalf("Run failure = %+v", bad)
	}
}

func TestRun_AbandonedFetchDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPage[[]rider](RidersFailure)
	ctx, cancel := context.WithCancel(context.Background())

	type outcome struct {
		ticket Ticket
		load   Load[[]rider]
	}
	results := make(chan outcome, 1)
	ticket := p.Begin()
	go func() {
		results <- outcome{ticket, Run(ctx, func(ctx context.Context) ([]rider, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})}
	}()

	p.Abandon()
	cancel()

	select {
	case got := <-results:
		if p.Resolve(got.ticket, got.load) {
			t.Fatalf("abandoned fetch was applied")
		}
		if !errors.Is(got.load.Err, context.Canceled) {
			t.Fatalf("load error = %v, want context.Canceled", got.load.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fetch did not return after cancel")
	}
}

func TestPhase_String(t *testing.T) {
	cases := map[Phase]string{Loading: "loading", Success: "success", Failure: "failure"}
	for phase, want := range cases {
		if phase.String() != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", phase, phase.String(), want)
		}
	}
}
