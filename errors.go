package ytslides

import (
	"ytslides/auth"
	yhttp "ytslides/http"
	"ytslides/internal/storage"
	"ytslides/slides"
	"ytslides/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytslides.ErrUnrecognizedURL) {
//		fmt.Println("Not a YouTube link")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var urlErr *ytslides.URLError
//	if errors.As(err, &urlErr) {
//		fmt.Printf("Skipped %s: %v\n", urlErr.URL, urlErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// ConfigError reports an unusable OAuth client secret.
	ConfigError = auth.ConfigError
	// FlowError reports a consent flow that produced no token.
	FlowError = auth.FlowError
	// APIError reports a rejected Slides API call.
	APIError = slides.APIError
	// URLError reports a link with no recognizable video ID.
	URLError = youtube.URLError
	// HTTPError reports a non-2xx watch page response.
	HTTPError = yhttp.HTTPError
	// StorageError wraps errors during token cache operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrClientSecretMissing indicates the OAuth client secret file does not exist.
	ErrClientSecretMissing = auth.ErrClientSecretMissing
	// ErrConsentDenied indicates the user declined access.
	ErrConsentDenied = auth.ErrConsentDenied
	// ErrNoToken indicates no OAuth token has been cached yet.
	ErrNoToken = auth.ErrNoToken

	// ErrUnrecognizedURL indicates a link is not a supported YouTube URL.
	ErrUnrecognizedURL = youtube.ErrUnrecognizedURL

	// Storage errors
	// ErrStorageCorrupt indicates the token cache could not be parsed.
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	// ErrLockTimeout indicates a timeout acquiring the token cache lock.
	ErrLockTimeout = storage.ErrLockTimeout
)
