package govinfo

import (
	"errors"
	"fmt"
)

// ErrMissingParameter is returned when a required parameter is absent.
// The check happens before any network call is issued.
var ErrMissingParameter = errors.New("missing required parameter")

// FetchExhaustedError is returned when the retry budget for a page is
// spent without a successful response. Records accumulated from earlier
// pages are discarded; the caller sees either the full result or this error.
type FetchExhaustedError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("fetch exhausted for %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchExhaustedError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a response body is not valid
// JSON or lacks the fields the envelope requires.
type MalformedResponseError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
