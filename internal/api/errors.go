package api

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind is the failure category used for diagnostics. Pages never show it to
// the user.
type Kind int

const (
	// KindLocal covers failures building the request or processing the body.
	KindLocal Kind = iota
	// KindNetwork means the request was sent but no response arrived.
	KindNetwork
	// KindServer means the backend answered with a non-success status.
	KindServer
)

// String returns the log label for the kind.
func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "local"
	}
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Detail is the backend's {"detail": "..."} message, when it sent one.
	Detail string
	Body   []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was caused by a deadline.
func (e *NetworkError) Timeout() bool {
	var ne net.Error
	if errors.As(e.Err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(e.Err.Error(), "deadline exceeded") ||
		strings.Contains(e.Err.Error(), "Client.Timeout")
}

// LocalError wraps any other failure constructing or processing a call.
type LocalError struct {
	Op  string
	Err error
}

func (e *LocalError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *LocalError) Unwrap() error { return e.Err }

// Classify maps an error returned by the client to its Kind.
func Classify(err error) Kind {
	var se *StatusError
	if errors.As(err, &se) {
		return KindServer
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return KindNetwork
	}
	return KindLocal
}

// Detail returns the backend-provided detail message, if err carries one.
func Detail(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}
