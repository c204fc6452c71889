package motogp

import (
	"strconv"
	"strings"
	"time"
)

const (
	// UnknownLabel is rendered in place of an absent text field.
	UnknownLabel = "Unknown"

	dateLayout = "2006-01-02"
)

// Rider mirrors the rider payload returned by /riders/ and /riders/{id}.
type Rider struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Nationality  *string `json:"nationality"`
	CareerStatus *string `json:"career_status"`
}

// FullName returns the rider's display name, or UnknownLabel when both name
// parts are blank.
func (r Rider) FullName() string {
	full := strings.Join(strings.Fields(r.Name+" "+r.Surname), " ")
	if full == "" {
		return UnknownLabel
	}
	return full
}

// Badge returns the nationality badge text. ok is false when the rider has
// no nationality, in which case no badge is rendered at all.
func (r Rider) Badge() (string, bool) {
	return present(r.Nationality)
}

// StatusLabel returns the career status or UnknownLabel.
func (r Rider) StatusLabel() string {
	if v, ok := present(r.CareerStatus); ok {
		return v
	}
	return UnknownLabel
}

// Season mirrors the season payload.
type Season struct {
	ID       int64  `json:"id"`
	Year     int    `json:"year"`
	Category string `json:"category"`
}

// RaceCircuit mirrors the payload returned by /races/ and /races/{id}.
type RaceCircuit struct {
	ID       int64   `json:"id"`
	SeasonID int64   `json:"season_id"`
	Circuit  *string `json:"circuit"`
	Date     *string `json:"date"`
}

// CircuitLabel returns the circuit name or UnknownLabel.
func (c RaceCircuit) CircuitLabel() string {
	if v, ok := present(c.Circuit); ok {
		return v
	}
	return UnknownLabel
}

// ParsedDate returns the race date, or the zero time when absent or malformed.
func (c RaceCircuit) ParsedDate() time.Time {
	v, ok := present(c.Date)
	if !ok {
		return time.Time{}
	}
	return parseDate(v)
}

// DateLabel formats the race date for display, falling back to "TBD".
func (c RaceCircuit) DateLabel() string {
	if t := c.ParsedDate(); !t.IsZero() {
		return t.Format("02 Jan 2006")
	}
	if v, ok := present(c.Date); ok {
		return v
	}
	return "TBD"
}

// ResultRace mirrors a row of /results/.
type ResultRace struct {
	ID            int64    `json:"id"`
	RiderID       int64    `json:"rider_id"`
	RaceCircuitID int64    `json:"race_circuit_id"`
	Position      *int     `json:"position"`
	Points        *float64 `json:"points"`
}

// PositionLabel renders the finishing position as "P<n>" or "DNF".
func (r ResultRace) PositionLabel() string {
	if r.Position == nil {
		return "DNF"
	}
	return "P" + strconv.Itoa(*r.Position)
}

// PointsLabel renders points without trailing zeros; absent points read "0".
func (r ResultRace) PointsLabel() string {
	if r.Points == nil {
		return "0"
	}
	return formatPoints(*r.Points)
}

// RaceWithResults is the backend's joined race projection. The client never
// builds one itself.
type RaceWithResults struct {
	ID         int64   `json:"id"`
	Circuit    *string `json:"circuit"`
	Date       *string `json:"date"`
	SeasonYear int     `json:"season_year"`
	Category   string  `json:"category"`
}

// RiderWithResults mirrors /riders/{id}/stats.
type RiderWithResults struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Nationality  *string `json:"nationality"`
	CareerStatus *string `json:"career_status"`
	TotalRaces   int     `json:"total_races"`
	TotalPoints  float64 `json:"total_points"`
	BestPosition *int    `json:"best_position"`
}

// Rider returns the rider fields of the projection.
func (r RiderWithResults) Rider() Rider {
	return Rider{
		ID:           r.ID,
		Name:         r.Name,
		Surname:      r.Surname,
		Nationality:  r.Nationality,
		CareerStatus: r.CareerStatus,
	}
}

// TotalPointsLabel renders the points total without trailing zeros.
func (r RiderWithResults) TotalPointsLabel() string {
	return formatPoints(r.TotalPoints)
}

// BestPositionLabel renders the best finish as "P<n>" or "—".
func (r RiderWithResults) BestPositionLabel() string {
	if r.BestPosition == nil {
		return "—"
	}
	return "P" + strconv.Itoa(*r.BestPosition)
}

// APIError is the error body the backend returns with non-2xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func present(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func parseDate(value string) time.Time {
	for _, layout := range []string{dateLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
