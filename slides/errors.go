package slides

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// APIError reports a Slides API call that the service rejected.
// Use errors.As() to extract it:
//
//	var apiErr *slides.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
//		fmt.Printf("%s rejected: %v\n", apiErr.Op, apiErr.Err)
//	}
type APIError struct {
	// Op is the API operation ("create", "deleteObject", "createSlide", "createVideo").
	Op string
	// PresentationID is the deck the call targeted, empty for create.
	PresentationID string
	// ObjectID is the object the call created or removed, if any.
	ObjectID string
	// StatusCode is the HTTP status returned by the service, 0 if the call
	// never got a response.
	StatusCode int
	// Err is the underlying error, usually a *googleapi.Error.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	msg := "slides: " + e.Op
	if e.ObjectID != "" {
		msg += " " + e.ObjectID
	}
	if e.PresentationID != "" {
		msg += " in " + e.PresentationID
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }

func newAPIError(op, presentationID, objectID string, err error) *APIError {
	apiErr := &APIError{Op: op, PresentationID: presentationID, ObjectID: objectID, Err: err}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		apiErr.StatusCode = gErr.Code
	}
	return apiErr
}
