package api

import "fmt"

// StatusError reports a request that reached the server but came back with
// a failing status. The message embeds the status and the failing endpoint
// so a log line alone is enough to locate the call.
type StatusError struct {
	Endpoint   string
	Status     int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s (%s)", e.Status, e.StatusText, e.Endpoint)
}

// PayloadError reports a 2xx response whose body could not be decoded into
// the expected shape. Kept distinct from StatusError so callers can tell
// transport-good/content-bad apart from transport-bad.
type PayloadError struct {
	Endpoint string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("malformed payload (%s)", e.Endpoint)
}

// TransportError reports a call that never completed: DNS failure, refused
// connection, cancelled context. No HTTP status was observed.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v (%s)", e.Err, e.Endpoint)
}

func (e *TransportError) Unwrap() error { return e.Err }
