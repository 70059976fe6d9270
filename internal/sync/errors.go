package sync

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a 404 on single-entity flows: typically a scanned
	// bag id that no longer resolves to a server-side bag.
	ErrNotFound = errors.New("entity not found")

	// ErrInFlight is returned when an identical write (same kind, id and
	// verb) has been issued and has not completed yet.
	ErrInFlight = errors.New("operation already in flight")
)

// EndpointError reports malformed URL construction. With a valid base URL it
// should be unreachable, but it is a checked path, not an assertion.
type EndpointError struct {
	Path string
	Err  error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %v", e.Path, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure: unreachable host, timeout,
// connection reset.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a response whose status did not match the expected
// success status.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected request: status %d", e.Status)
}

// DecodeError reports a malformed response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure serializing an outgoing payload.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding request: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
