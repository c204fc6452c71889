package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/motogp"
	"github.com/five82/motostats/internal/state"
)

type stubFetcher struct {
	riders    []motogp.Rider
	ridersErr error
	races     []motogp.RaceCircuit
	racesErr  error
	stats     map[int64]motogp.RiderWithResults

	mu    sync.Mutex
	calls int
}

func (f *stubFetcher) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *stubFetcher) ListRiders(context.Context) ([]motogp.Rider, error) {
	f.count()
	return f.riders, f.ridersErr
}

func (f *stubFetcher) GetRider(context.Context, int64) (motogp.Rider, error) {
	return motogp.Rider{}, errors.New("not used")
}

func (f *stubFetcher) GetRiderStats(_ context.Context, id int64) (motogp.RiderWithResults, error) {
	f.count()
	if s, ok := f.stats[id]; ok {
		return s, nil
	}
	return motogp.RiderWithResults{}, &api.StatusError{StatusCode: http.StatusNotFound, Detail: "Rider not found"}
}

func (f *stubFetcher) ListRaceCircuits(context.Context) ([]motogp.RaceCircuit, error) {
	f.count()
	return f.races, f.racesErr
}

func (f *stubFetcher) GetRaceCircuit(context.Context, int64) (motogp.RaceCircuit, error) {
	return motogp.RaceCircuit{}, errors.New("not used")
}

func (f *stubFetcher) ListResults(context.Context) ([]motogp.ResultRace, error) {
	return nil, nil
}

func str(s string) *string { return &s }

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNew_RequiresFetcher(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHome(t *testing.T) {
	f := &stubFetcher{}
	ts := newTestServer(t, Options{Fetcher: f})

	status, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Welcome to MotoGP Stats")
	assert.Contains(t, body, `<a href="/" class="active" aria-current="page">Home</a>`)
	assert.Contains(t, body, `<a href="/riders">View Riders →</a>`)
	assert.Contains(t, body, "Built with Go &amp; Bubble Tea")
	assert.Equal(t, 3, strings.Count(body, `<p class="value">--</p>`))
	assert.Zero(t, f.calls, "home must not call the backend")
}

func TestRiders_Populated(t *testing.T) {
	f := &stubFetcher{riders: []motogp.Rider{
		{ID: 93, Name: "Marc", Surname: "Marquez", Nationality: str("ESP"), CareerStatus: str("active")},
		{ID: 46, Name: "Valentino", Surname: "Rossi"},
		{ID: 7},
	}}
	ts := newTestServer(t, Options{Fetcher: f})

	status, body := get(t, ts, "/riders")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, f.calls)
	assert.Contains(t, body, "(3 riders)")
	assert.Contains(t, body, `<a href="/riders/93">Marc Marquez</a>`)
	assert.Contains(t, body, `<a href="/riders/7">Unknown</a>`)
	assert.Contains(t, body, `id="rider-46"`)
	assert.Equal(t, 1, strings.Count(body, `class="badge"`), "badge only for riders with a nationality")
	assert.Contains(t, body, `<span class="badge">ESP</span>`)
	assert.Contains(t, body, "Unknown")
	assert.NotContains(t, body, state.RidersFailure)
	assert.NotContains(t, body, "No Riders Yet")
}

func TestRiders_Empty(t *testing.T) {
	ts := newTestServer(t, Options{Fetcher: &stubFetcher{riders: []motogp.Rider{}}})

	status, body := get(t, ts, "/riders")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No Riders Yet")
	assert.Contains(t, body, "API endpoint is working correctly")
	assert.NotContains(t, body, "riders)")
	assert.NotContains(t, body, state.RidersFailure)
}

func TestRiders_Failure(t *testing.T) {
	f := &stubFetcher{ridersErr: &api.StatusError{StatusCode: 500, Detail: "database down"}}
	core, logs := observer.New(zapcore.InfoLevel)
	ts := newTestServer(t, Options{Fetcher: f, Logger: zap.New(core)})

	status, body := get(t, ts, "/riders?page=1")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, state.RidersFailure)
	assert.Contains(t, body, `<a class="retry" href="/riders?page=1">Retry</a>`)
	assert.NotContains(t, body, "database down")
	assert.NotContains(t, body, "No Riders Yet")

	failed := logs.FilterMessage("page load failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "server", failed[0].ContextMap()["kind"])
}

func TestRiders_FailureWithDetail(t *testing.T) {
	f := &stubFetcher{ridersErr: &api.StatusError{StatusCode: 500, Detail: "database down"}}
	ts := newTestServer(t, Options{Fetcher: f, ShowErrorDetail: true})

	_, body := get(t, ts, "/riders")
	assert.Contains(t, body, state.RidersFailure+" (database down)")
}

func TestRider(t *testing.T) {
	best := 2
	f := &stubFetcher{stats: map[int64]motogp.RiderWithResults{
		7: {ID: 7, Name: "Jorge", Surname: "Lorenzo", TotalRaces: 297, TotalPoints: 2942, BestPosition: &best},
	}}
	ts := newTestServer(t, Options{Fetcher: f})

	status, body := get(t, ts, "/riders/7")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Jorge Lorenzo")
	assert.Contains(t, body, `<p class="value">297</p>`)
	assert.Contains(t, body, `<p class="value">2942</p>`)
	assert.Contains(t, body, `<p class="value">P2</p>`)
	assert.NotContains(t, body, `class="badge"`)

	status, body = get(t, ts, "/riders/8")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, state.RiderFailure)
}

func TestRider_InvalidID(t *testing.T) {
	f := &stubFetcher{}
	ts := newTestServer(t, Options{Fetcher: f})

	for _, path := range []string{"/riders/abc", "/riders/0", "/riders/-3"} {
		status, _ := get(t, ts, path)
		assert.Equal(t, http.StatusBadRequest, status, path)
	}
	assert.Zero(t, f.calls)
}

func TestRaces(t *testing.T) {
	f := &stubFetcher{races: []motogp.RaceCircuit{
		{ID: 3, SeasonID: 12, Circuit: str("Mugello"), Date: str("2024-06-02")},
		{ID: 4, SeasonID: 12},
	}}
	ts := newTestServer(t, Options{Fetcher: f})

	status, body := get(t, ts, "/races")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "(2 races)")
	assert.Contains(t, body, "Mugello")
	assert.Contains(t, body, "02 Jun 2024")
	assert.Contains(t, body, "TBD")
	assert.Contains(t, body, `class="active" aria-current="page">Races</a>`)
}

func TestRaces_EmptyAndFailure(t *testing.T) {
	f := &stubFetcher{races: []motogp.RaceCircuit{}}
	ts := newTestServer(t, Options{Fetcher: f})
	_, body := get(t, ts, "/races")
	assert.Contains(t, body, "No Races Yet")

	f.racesErr = errors.New("connection refused")
	status, body := get(t, ts, "/races")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, state.RacesFailure)
}

func TestStandingsAndHealth(t *testing.T) {
	ts := newTestServer(t, Options{Fetcher: &stubFetcher{}})

	status, body := get(t, ts, "/standings")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Coming soon")

	status, body = get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	status, body = get(t, ts, "/static/site.css")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, ".badge")

	status, _ = get(t, ts, "/nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ts := newTestServer(t, Options{Fetcher: &stubFetcher{}, Logger: zap.New(core)})

	get(t, ts, "/healthz")
	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRequestIDReachesBackend(t *testing.T) {
	seen := make(chan string, 1)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(api.RequestIDHeader)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(backend.Close)

	client, err := api.New(api.Options{
		BaseURL:             backend.URL,
		Timeout:             time.Second,
		RequestInterceptors: []api.RequestInterceptor{api.WithRequestID()},
	})
	require.NoError(t, err)
	ts := newTestServer(t, Options{Fetcher: client})

	status, _ := get(t, ts, "/riders")
	assert.Equal(t, http.StatusOK, status)
	id := <-seen
	assert.Contains(t, id, "/", "chi request ids look like host/prefix-seq")
}
