// Package youtube resolves YouTube links into video IDs and video IDs into
// human-readable titles.
package youtube

import (
	"errors"
	"net/url"
)

// Sentinel errors for video reference operations.
var (
	// ErrUnrecognizedURL indicates a link is not one of the supported YouTube URL shapes.
	ErrUnrecognizedURL = errors.New("youtube: unrecognized video URL")
	// ErrNoPageTitle indicates the watch page had no usable <title>.
	ErrNoPageTitle = errors.New("youtube: watch page has no title")
)

// DefaultWatchURLBase is prefixed to a video ID to build its public watch page URL.
const DefaultWatchURLBase = "https://www.youtube.com/watch?v="

// VideoID is the opaque identifier YouTube assigns to a video (e.g. "dQw4w9WgXcQ").
// It is also used as the namespace for slide object IDs.
type VideoID string

// String returns the raw identifier.
func (id VideoID) String() string { return string(id) }

// WatchURL returns the public watch page URL for this video under base,
// or under DefaultWatchURLBase if base is empty. The ID is query-escaped.
func (id VideoID) WatchURL(base string) string {
	if base == "" {
		base = DefaultWatchURLBase
	}
	return base + url.QueryEscape(string(id))
}

// PlaceholderTitle is the title used when no real title can be determined.
func PlaceholderTitle(id VideoID) string {
	return "Video " + string(id)
}

// URLError reports a link that could not be turned into a VideoID.
// Use errors.As() to get the offending URL:
//
//	var urlErr *youtube.URLError
//	if errors.As(err, &urlErr) {
//		fmt.Printf("skipping %s\n", urlErr.URL)
//	}
type URLError struct {
	// URL is the input that was rejected.
	URL string
	// Err is ErrUnrecognizedURL, possibly wrapping a parse error.
	Err error
}

// Error returns a string representation of the URL error.
func (e *URLError) Error() string {
	return "could not extract video ID from URL " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *URLError) Unwrap() error { return e.Err }
