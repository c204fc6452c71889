// Package state models the lifecycle of a page that loads remote data.
//
// # Overview
//
// A data-bound page is always in exactly one Phase:
//
//	         Begin
//	  ┌─────────────────┐
//	  ↓                 │
//	Loading ──ok──→ Success
//	  │                 ↑
//	  └──err──→ Failure ┘ (Begin again on retry)
//
// Loading and Failure are mutually exclusive by construction because Phase is
// a single value rather than a pair of flags.
//
// # Core Types
//
// Load:
//   - Tagged result of one fetch (Success with Data, Failure with Err)
//   - Built by Run, Loaded or Failed
//
// Page:
//   - Holds the data from the last success, the current Phase and the
//     user-facing failure message
//   - Plain value, meant to live inside a Bubble Tea model or a single request
//
// Ticket:
//   - Returned by Begin and handed back to Resolve with the outcome
//   - Only the most recent ticket is accepted
//
// # Stale Results
//
// Every Begin increments the page generation. Resolve drops any outcome whose
// ticket does not match the current generation, and Abandon bumps the
// generation without starting a new attempt. A reload or a page switch
// therefore can never be overwritten by a slower, older fetch:
//
//	t1 := page.Begin()
//	t2 := page.Begin()          // user pressed reload
//	page.Resolve(t2, fresh)     // applied
//	page.Resolve(t1, old)       // ignored, returns false
//
// # Failure Messages
//
// A failed attempt always shows the page's fixed message (RidersFailure,
// RacesFailure, RiderFailure). The error itself is kept for diagnostics via
// Err. Pages built WithDetail append the server-provided detail text.
//
// Data from the last success survives a later failure, so a front end may
// still show it next to the error.
package state
