package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// ExtractVideoID parses a YouTube link into its video ID.
//
// Recognized forms, in precedence order:
//
//	https://www.youtube.com/watch?v=<id>   (also youtube.com)
//	https://youtu.be/<id>
//	https://<any host>/embed/<id>
//
// Anything else, including a /watch link without a v parameter, returns a
// *URLError wrapping ErrUnrecognizedURL.
func ExtractVideoID(rawURL string) (VideoID, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &URLError{URL: rawURL, Err: fmt.Errorf("%w: %v", ErrUnrecognizedURL, err)}
	}

	var id string
	switch host := strings.ToLower(u.Hostname()); {
	case (host == "youtube.com" || host == "www.youtube.com") && u.Path == "/watch":
		id = u.Query().Get("v")
		if id == "" {
			return "", &URLError{URL: rawURL, Err: fmt.Errorf("%w: missing v parameter", ErrUnrecognizedURL)}
		}
	case host == "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(u.Path, "/embed/"):
		// "/embed/<id>/..." splits into ["", "embed", "<id>", ...]
		id = strings.Split(u.Path, "/")[2]
	default:
		return "", &URLError{URL: rawURL, Err: ErrUnrecognizedURL}
	}

	if id == "" {
		return "", &URLError{URL: rawURL, Err: fmt.Errorf("%w: empty video ID", ErrUnrecognizedURL)}
	}
	return VideoID(id), nil
}
