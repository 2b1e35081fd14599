package api

import "net/http"

// outcome is the classification of a raw response. Exactly one outcome is
// produced per response; what counts as "empty" depends on the endpoint,
// not on the status code alone.
type outcome int

const (
	// outcomeSuccess: status in [200,300) and the body (possibly empty)
	// is the payload.
	outcomeSuccess outcome = iota
	// outcomeEmpty: 204 or 404 on a lookup-style endpoint where "not
	// found" is a legitimate empty result, not an error.
	outcomeEmpty
	// outcomeFailed: everything else; the accompanying error is a
	// *StatusError.
	outcomeFailed
)

// classify maps a status code to an outcome. lookup marks endpoints where
// 404/204 mean "nothing there" rather than failure; for all other
// endpoints those statuses fail like any other non-2xx.
func classify(endpoint string, status int, lookup bool) (outcome, error) {
	if lookup && (status == http.StatusNoContent || status == http.StatusNotFound) {
		return outcomeEmpty, nil
	}
	if status >= 200 && status < 300 {
		return outcomeSuccess, nil
	}
	return outcomeFailed, &StatusError{
		Endpoint:   endpoint,
		Status:     status,
		StatusText: http.StatusText(status),
	}
}
