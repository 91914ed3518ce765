// Package crawl fetches job-description text from a URL through a Firecrawl-compatible crawl API.
package crawl

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidURL matches any *InvalidURLError via errors.Is.
var ErrInvalidURL = errors.New("invalid url")

// ErrSuperseded is returned when a newer attempt replaced the running one.
var ErrSuperseded = errors.New("crawl attempt superseded")

// networkHint is appended to transport failures.
const networkHint = "check that the crawl API is reachable and the proxy is configured"

// InvalidURLError represents a URL rejected before any network call
type InvalidURLError struct {
	URL     string
	Message string
	Cause   error
}

func (e *InvalidURLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid url %q: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Message)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrInvalidURL.
func (e *InvalidURLError) Is(target error) bool {
	return target == ErrInvalidURL
}

// RequestError represents a non-success answer from the crawl API
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("crawl request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("crawl request failed: %s", e.Message)
}

// NetworkError represents a transport failure talking to the crawl API
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v (%s)", e.Message, e.Cause, networkHint)
	}
	return fmt.Sprintf("network error: %s (%s)", e.Message, networkHint)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Hint returns the troubleshooting advice shown with the error.
func (e *NetworkError) Hint() string {
	return networkHint
}

// FailedError represents a crawl job the API reported as failed
type FailedError struct {
	Message   string
	Completed int
	Total     int
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("crawl failed after %d of %d pages: %s", e.Completed, e.Total, e.Message)
}

// TimedOutError represents a crawl that produced no text before the deadline
type TimedOutError struct {
	Elapsed time.Duration
}

func (e *TimedOutError) Error() string {
	return fmt.Sprintf("crawl timed out after %s with no content", e.Elapsed.Round(time.Millisecond))
}
