// Package motogp defines the records exchanged with the MotoGP Stats backend.
//
// # Overview
//
// Every type mirrors a backend response schema field-for-field, using the
// backend's snake_case JSON names. Values are read-only snapshots: the client
// decodes them, renders them, and drops them when the page that fetched them
// goes away. Nothing here is cached or mutated.
//
// # Optional Fields
//
// Any field the backend declares nullable is a pointer. A JSON null decodes to
// nil and encodes back to null, so decoding and re-encoding a payload yields
// the same field values.
//
// Rendering code never dereferences these pointers directly. It goes through
// the label helpers, which own the fallback rules:
//
//   - Rider.Badge: nationality, or no badge at all
//   - Rider.StatusLabel: career status, or "Unknown"
//   - RaceCircuit.CircuitLabel / DateLabel: circuit or "Unknown", date or "TBD"
//   - ResultRace.PositionLabel / PointsLabel: "P3" or "DNF", points or "0"
//
// Blank strings are treated the same as absent ones.
//
// # Types
//
//   - Rider: /riders/ and /riders/{id}
//   - RiderWithResults: /riders/{id}/stats (rider plus aggregate results)
//   - Season: season year and category
//   - RaceCircuit: /races/ and /races/{id}
//   - ResultRace: /results/
//   - RaceWithResults: joined race projection built by the backend
//   - APIError: {"detail": "..."} body sent with error responses
package motogp
