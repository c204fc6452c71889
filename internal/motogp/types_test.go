package motogp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func TestRiderLabels(t *testing.T) {
	r := Rider{ID: 1, Name: "Marc", Surname: "Marquez", Nationality: strPtr("ESP"), CareerStatus: strPtr("Active")}
	if got := r.FullName(); got != "Marc Marquez" {
		t.Fatalf("FullName = %q, want %q", got, "Marc Marquez")
	}
	badge, ok := r.Badge()
	if !ok || badge != "ESP" {
		t.Fatalf("Badge = (%q, %v), want (ESP, true)", badge, ok)
	}
	if got := r.StatusLabel(); got != "Active" {
		t.Fatalf("StatusLabel = %q, want Active", got)
	}
}

func TestRiderLabels_AbsentFieldsFallBack(t *testing.T) {
	r := Rider{ID: 2, Name: "Pedro", Surname: "Acosta"}
	if _, ok := r.Badge(); ok {
		t.Fatalf("Badge ok = true for nil nationality, want false")
	}
	if got := r.StatusLabel(); got != "Unknown" {
		t.Fatalf("StatusLabel = %q, want Unknown", got)
	}

	r.Nationality = strPtr("  ")
	r.CareerStatus = strPtr("")
	if _, ok := r.Badge(); ok {
		t.Fatalf("Badge ok = true for blank nationality, want false")
	}
	if got := r.StatusLabel(); got != "Unknown" {
		t.Fatalf("StatusLabel = %q, want Unknown for blank status", got)
	}

	if got := (Rider{ID: 7}).FullName(); got != "Unknown" {
		t.Fatalf("FullName = %q, want Unknown for absent names", got)
	}
	if got := (Rider{ID: 8, Name: "  ", Surname: "Bagnaia "}).FullName(); got != "Bagnaia" {
		t.Fatalf("FullName = %q, want Bagnaia", got)
	}
	if got := (RiderWithResults{ID: 9}).Rider().FullName(); got != "Unknown" {
		t.Fatalf("stats FullName = %q, want Unknown", got)
	}
}

func TestRaceCircuitLabels(t *testing.T) {
	c := RaceCircuit{ID: 3, SeasonID: 1, Circuit: strPtr("Mugello"), Date: strPtr("2024-06-02")}
	if got := c.CircuitLabel(); got != "Mugello" {
		t.Fatalf("CircuitLabel = %q, want Mugello", got)
	}
	d := c.ParsedDate()
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 2 {
		t.Fatalf("ParsedDate = %v, want 2024-06-02", d)
	}
	if got := c.DateLabel(); got != "02 Jun 2024" {
		t.Fatalf("DateLabel = %q, want 02 Jun 2024", got)
	}

	empty := RaceCircuit{ID: 4}
	if got := empty.CircuitLabel(); got != "Unknown" {
		t.Fatalf("CircuitLabel = %q, want Unknown", got)
	}
	if got := empty.DateLabel(); got != "TBD" {
		t.Fatalf("DateLabel = %q, want TBD", got)
	}
	if !empty.ParsedDate().IsZero() {
		t.Fatalf("ParsedDate should be zero when date is absent")
	}

	odd := RaceCircuit{Date: strPtr("round 3")}
	if got := odd.DateLabel(); got != "round 3" {
		t.Fatalf("DateLabel = %q, want raw value for unparseable date", got)
	}
}

func TestResultLabels(t *testing.T) {
	pos := 3
	pts := 16.0
	r := ResultRace{Position: &pos, Points: &pts}
	if got := r.PositionLabel(); got != "P3" {
		t.Fatalf("PositionLabel = %q, want P3", got)
	}
	if got := r.PointsLabel(); got != "16" {
		t.Fatalf("PointsLabel = %q, want 16", got)
	}
	half := 12.5
	r.Points = &half
	if got := r.PointsLabel(); got != "12.5" {
		t.Fatalf("PointsLabel = %q, want 12.5", got)
	}

	dnf := ResultRace{}
	if got := dnf.PositionLabel(); got != "DNF" {
		t.Fatalf("PositionLabel = %q, want DNF", got)
	}
	if got := dnf.PointsLabel(); got != "0" {
		t.Fatalf("PointsLabel = %q, want 0", got)
	}
}

func TestRiderWithResultsLabels(t *testing.T) {
	best := 1
	stats := RiderWithResults{ID: 93, Name: "Marc", Surname: "Marquez", TotalRaces: 20, TotalPoints: 392.5, BestPosition: &best}
	if got := stats.TotalPointsLabel(); got != "392.5" {
		t.Fatalf("TotalPointsLabel = %q, want 392.5", got)
	}
	if got := stats.BestPositionLabel(); got != "P1" {
		t.Fatalf("BestPositionLabel = %q, want P1", got)
	}
	if got := stats.Rider().FullName(); got != "Marc Marquez" {
		t.Fatalf("Rider().FullName = %q", got)
	}
	stats.BestPosition = nil
	if got := stats.BestPositionLabel(); got != "—" {
		t.Fatalf("BestPositionLabel = %q, want em dash", got)
	}
}

// Decoding a backend payload and encoding it again must preserve every field,
// including explicit nulls.
func TestRoundTripPreservesFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		decode  func([]byte) (any, error)
	}{
		{
			name:    "rider",
			payload: `{"id":1,"name":"Marc","surname":"Marquez","nationality":"ESP","career_status":"Active"}`,
			decode:  decodeAs[Rider],
		},
		{
			name:    "rider with nulls",
			payload: `{"id":2,"name":"Pedro","surname":"Acosta","nationality":null,"career_status":null}`,
			decode:  decodeAs[Rider],
		},
		{
			name:    "season",
			payload: `{"id":1,"year":2024,"category":"MotoGP"}`,
			decode:  decodeAs[Season],
		},
		{
			name:    "race circuit",
			payload: `{"id":7,"season_id":1,"circuit":"Assen","date":"2024-06-30"}`,
			decode:  decodeAs[RaceCircuit],
		},
		{
			name:    "result",
			payload: `{"id":11,"rider_id":1,"race_circuit_id":7,"position":null,"points":12.5}`,
			decode:  decodeAs[ResultRace],
		},
		{
			name:    "race with results",
			payload: `{"id":7,"circuit":null,"date":"2024-06-30","season_year":2024,"category":"MotoGP"}`,
			decode:  decodeAs[RaceWithResults],
		},
		{
			name:    "rider stats",
			payload: `{"id":1,"name":"Marc","surname":"Marquez","nationality":"ESP","career_status":null,"total_races":3,"total_points":41,"best_position":2}`,
			decode:  decodeAs[RiderWithResults],
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := tc.decode([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			var want, got map[string]any
			if err := json.Unmarshal([]byte(tc.payload), &want); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}
			if err := json.Unmarshal(encoded, &got); err != nil {
				t.Fatalf("unmarshal encoded: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func decodeAs[T any](data []byte) (any, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
