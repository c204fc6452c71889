// Package api provides the HTTP client for the MotoGP Stats backend.
//
// # Overview
//
// Everything the client knows about transport is in one Options value:
// base URL, timeout ceiling, default headers, and the interceptor chains.
// New validates and copies it into a Client. Because no package-level client
// or mutable interceptor registry exists, two clients built with different
// Options never affect each other.
//
//	client, err := api.New(api.Options{
//		BaseURL:              "http://127.0.0.1:8000/api",
//		Timeout:              10 * time.Second,
//		ResponseInterceptors: []api.ResponseInterceptor{api.LoggingInterceptor(logger)},
//	})
//
// # Resource Accessors
//
// Each accessor issues exactly one GET and returns the decoded body:
//
//   - ListRiders: GET /riders/
//   - GetRider: GET /riders/{id}
//   - GetRiderStats: GET /riders/{id}/stats
//   - ListRaceCircuits: GET /races/
//   - GetRaceCircuit: GET /races/{id}
//   - ListResults: GET /results/
//
// Accessors do not validate, transform or retry. Paths are joined onto the
// base URL's path, so a base of http://host/api reaches http://host/api/riders/.
//
// # Interceptors
//
// Request interceptors run before the request is sent. The default chain is a
// single PassThrough, kept as the hook for auth token injection. WithRequestID
// adds an X-Request-ID header for log correlation.
//
// Response interceptors see every attempt, successful or not. LoggingInterceptor
// logs failures as "api error" (server answered with an error status),
// "network error" (no response) or "request error" (anything else), then
// returns the error unchanged.
//
// # Errors
//
// Failures come back as one of three types, each of which Classify maps to a
// Kind:
//
//   - *StatusError (KindServer): status code, path, raw body and the parsed
//     {"detail": "..."} message
//   - *NetworkError (KindNetwork): wraps the transport error; Timeout reports
//     deadline failures
//   - *LocalError (KindLocal): request construction, interceptor or decode
//     failures
//
// NetworkError and LocalError unwrap to their cause, so errors.Is and
// errors.As keep working through the chain.
package api
