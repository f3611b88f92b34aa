package models

import "errors"

var (
	// ErrNetwork means a request could not complete.
	ErrNetwork = errors.New("network failure")
	// ErrNotFound means a single-job lookup found no match.
	ErrNotFound = errors.New("job not found")
	// ErrMalformed means the response envelope had an unexpected shape.
	// Stores treat it like ErrNetwork.
	ErrMalformed = errors.New("malformed response")
)

// IsFetchFailure reports whether err should surface as a failed fetch.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrMalformed)
}
