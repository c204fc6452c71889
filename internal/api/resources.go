package api

import (
	"context"
	"strconv"

	"github.com/five82/motostats/internal/motogp"
)

// Fetcher is the read-only surface the front ends depend on. *Client
// implements it; tests substitute fakes.
type Fetcher interface {
	ListRiders(ctx context.Context) ([]motogp.Rider, error)
	GetRider(ctx context.Context, id int64) (motogp.Rider, error)
	GetRiderStats(ctx context.Context, id int64) (motogp.RiderWithResults, error)
	ListRaceCircuits(ctx context.Context) ([]motogp.RaceCircuit, error)
	GetRaceCircuit(ctx context.Context, id int64) (motogp.RaceCircuit, error)
	ListResults(ctx context.Context) ([]motogp.ResultRace, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ListRiders fetches GET /riders/.
func (c *Client) ListRiders(ctx context.Context) ([]motogp.Rider, error) {
	var payload []motogp.Rider
	if err := c.Get(ctx, "/riders/", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetRider fetches GET /riders/{id}.
func (c *Client) GetRider(ctx context.Context, id int64) (motogp.Rider, error) {
	var payload motogp.Rider
	if err := c.Get(ctx, "/riders/"+itoa(id), &payload); err != nil {
		return motogp.Rider{}, err
	}
	return payload, nil
}

// GetRiderStats fetches GET /riders/{id}/stats.
func (c *Client) GetRiderStats(ctx context.Context, id int64) (motogp.RiderWithResults, error) {
	var payload motogp.RiderWithResults
	if err := c.Get(ctx, "/riders/"+itoa(id)+"/stats", &payload); err != nil {
		return motogp.RiderWithResults{}, err
	}
	return payload, nil
}

// ListRaceCircuits fetches GET /races/.
func (c *Client) ListRaceCircuits(ctx context.Context) ([]motogp.RaceCircuit, error) {
	var payload []motogp.RaceCircuit
	if err := c.Get(ctx, "/races/", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetRaceCircuit fetches GET /races/{id}.
func (c *Client) GetRaceCircuit(ctx context.Context, id int64) (motogp.RaceCircuit, error) {
	var payload motogp.RaceCircuit
	if err := c.Get(ctx, "/races/"+itoa(id), &payload); err != nil {
		return motogp.RaceCircuit{}, err
	}
	return payload, nil
}

// ListResults fetches GET /results/.
func (c *Client) ListResults(ctx context.Context) ([]motogp.ResultRace, error) {
	var payload []motogp.ResultRace
	if err := c.Get(ctx, "/results/", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
