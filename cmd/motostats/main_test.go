package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/motostats/internal/config"
	"github.com/five82/motostats/internal/motogp"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{config.EnvAPIURL, config.EnvTimeout, config.EnvLogLevel, config.EnvListen} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/riders/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 93, "name": "Marc", "surname": "Marquez", "nationality": "ESP", "career_status": "active"},
			{"id": 46, "name": "Valentino", "surname": "Rossi", "nationality": null, "career_status": null}
		]`))
	})
	mux.HandleFunc("/api/riders/93", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 93, "name": "Marc", "surname": "Marquez", "nationality": "ESP", "career_status": "active"}`))
	})
	mux.HandleFunc("/api/riders/93/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 93, "name": "Marc", "surname": "Marquez", "nationality": "ESP", "career_status": "active",
			"total_races": 200, "total_points": 3100.5, "best_position": 1}`))
	})
	mux.HandleFunc("/api/riders/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Rider not found"}`))
	})
	mux.HandleFunc("/api/races/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 3, "season_id": 12, "circuit": "Mugello", "date": "2024-06-02"}]`))
	})
	mux.HandleFunc("/api/races/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 3, "season_id": 12, "circuit": "Mugello", "date": "2024-06-02"}`))
	})
	mux.HandleFunc("/api/results/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "rider_id": 93, "race_circuit_id": 3, "position": 1, "points": 25},
			{"id": 2, "rider_id": 46, "race_circuit_id": 3, "position": null, "points": null}]`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRiders_Table(t *testing.T) {
	isolate(t)
	ts := backend(t)

	out, err := execute(t, "riders", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^ID\s+NAME\s+NATIONALITY\s+STATUS$`, lines[0])
	assert.Regexp(t, `^93\s+Marc Marquez\s+ESP\s+active$`, lines[1])
	assert.Regexp(t, `^46\s+Valentino Rossi\s+-\s+Unknown$`, lines[2])
}

func TestRiders_JSONRoundTrip(t *testing.T) {
	isolate(t)
	ts := backend(t)

	out, err := execute(t, "riders", "--json", "--api-url", ts.URL+"/api")
	require.NoError(t, err)

	var got []motogp.Rider
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	esp, active := "ESP", "active"
	want := []motogp.Rider{
		{ID: 93, Name: "Marc", Surname: "Marquez", Nationality: &esp, CareerStatus: &active},
		{ID: 46, Name: "Valentino", Surname: "Rossi"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("riders mismatch (-want +got):\n%s", diff)
	}
}

func TestRider(t *testing.T) {
	isolate(t)
	ts := backend(t)

	out, err := execute(t, "rider", "93", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	assert.Contains(t, out, "Marc Marquez")
	assert.Contains(t, out, "ESP")
	assert.NotContains(t, out, "Total races")

	out, err = execute(t, "rider", "93", "--stats", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	assert.Regexp(t, `Total points\s+3100.5`, out)
	assert.Regexp(t, `Best position\s+P1`, out)
}

func TestRider_Errors(t *testing.T) {
	isolate(t)
	ts := backend(t)

	_, err := execute(t, "rider", "abc", "--api-url", ts.URL+"/api")
	assert.ErrorContains(t, err, `invalid id "abc"`)

	_, err = execute(t, "rider", "404", "--api-url", ts.URL+"/api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rider not found")

	_, err = execute(t, "rider", "--api-url", ts.URL+"/api")
	assert.Error(t, err)
}

func TestRacesAndRace(t *testing.T) {
	isolate(t)
	ts := backend(t)

	out, err := execute(t, "races", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	assert.Regexp(t, `3\s+Mugello\s+02 Jun 2024\s+12`, out)

	out, err = execute(t, "race", "3", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	assert.Regexp(t, `Circuit\s+Mugello`, out)
}

func TestResults(t *testing.T) {
	isolate(t)
	ts := backend(t)

	out, err := execute(t, "results", "--api-url", ts.URL+"/api")
	require.NoError(t, err)
	assert.Regexp(t, `1\s+93\s+3\s+P1\s+25`, out)
	assert.Regexp(t, `2\s+46\s+3\s+DNF\s+0`, out)
}

func TestLogs(t *testing.T) {
	isolate(t)
	logFile := filepath.Join(t.TempDir(), "motostats.log")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`log_file = "`+logFile+`"`), 0o600))

	out, err := execute(t, "logs", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No log entries")

	require.NoError(t, os.WriteFile(logFile, []byte(
		`{"level":"info","ts":"2026-01-02T03:04:05.000Z","msg":"starting tui","theme":"Nightfox"}`+"\n"+
			`{"level":"error","ts":"2026-01-02T03:04:06.000Z","msg":"network error","path":"/api/riders/"}`+"\n"), 0o600))

	out, err = execute(t, "logs", "-n", "1", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "starting tui")
	assert.Contains(t, out, "network error")
	assert.Contains(t, out, "path=/api/riders/")

	out, err = execute(t, "logs", "--raw", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"msg":"starting tui"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "motostats dev\n", out)
}

func TestInvalidEnvironmentFails(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvTimeout, "later")

	_, err := execute(t, "riders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvTimeout)
}
