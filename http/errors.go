package http

import (
	"errors"
	"fmt"
	"time"
)

// ErrFetchFailed indicates the request got no HTTP response (DNS, TLS,
// connection reset, timeout).
var ErrFetchFailed = errors.New("http: fetch failed")

// HTTPError reports a page that answered with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
	// RetryAfter is the server's Retry-After hint, if any. It is reported,
	// never waited on.
	RetryAfter time.Duration
}

// Error returns a string representation of the HTTP error.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("http: GET %s: status %d", e.URL, e.StatusCode)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %v)", e.RetryAfter)
	}
	return msg
}
