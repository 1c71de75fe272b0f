// Package slides builds Google Slides decks with one embedded video per slide.
package slides

import (
	"context"
	"errors"

	slidesapi "google.golang.org/api/slides/v1"

	"ytslides/youtube"
)

const (
	// DefaultSlideObjectID is the object ID of the blank slide the service
	// adds to every new presentation.
	DefaultSlideObjectID = "p"

	// VideoWidthPT and VideoHeightPT give a 16:9 frame sized to a standard slide.
	VideoWidthPT  = 720
	VideoHeightPT = 405

	titleOnlyLayout = "TITLE_ONLY"
)

// PresentationURL returns the browser URL for editing a presentation.
func PresentationURL(presentationID string) string {
	return "https://docs.google.com/presentation/d/" + presentationID + "/edit"
}

// VideoSlide describes a slide created by AddVideoSlide.
type VideoSlide struct {
	VideoID       youtube.VideoID
	Title         string
	SlideID       string
	TitleID       string
	VideoObjectID string
}

// ObjectIDs derives the slide, title placeholder and video element IDs for a video.
// They are unique per presentation only as long as the video is.
func ObjectIDs(id youtube.VideoID) (slideID, titleID, videoObjectID string) {
	return "slide_" + string(id), "title_" + string(id), "video_" + string(id)
}

// Builder creates presentations and adds video slides through the Slides API.
// Calls are not retried and not idempotent.
type Builder struct {
	service *slidesapi.Service
}

// NewBuilder wraps an authenticated Slides API service.
func NewBuilder(service *slidesapi.Service) *Builder {
	return &Builder{service: service}
}

// CreatePresentation creates an empty deck titled title and removes the
// service's default slide. It returns the new presentation ID.
// On error the caller must not add slides.
func (b *Builder) CreatePresentation(ctx context.Context, title string) (string, error) {
	pres, err := b.service.Presentations.Create(&slidesapi.Presentation{Title: title}).
		Context(ctx).
		Do()
	if err != nil {
		return "", newAPIError("create", "", "", err)
	}
	if pres.PresentationId == "" {
		return "", newAPIError("create", "", "", errors.New("response has no presentation ID"))
	}

	err = b.batchUpdate(ctx, pres.PresentationId, []*slidesapi.Request{
		{DeleteObject: &slidesapi.DeleteObjectRequest{ObjectId: DefaultSlideObjectID}},
	})
	if err != nil {
		return "", newAPIError("deleteObject", pres.PresentationId, DefaultSlideObjectID, err)
	}

	return pres.PresentationId, nil
}

// AddVideoSlide inserts a TITLE_ONLY slide at the front of the deck with
// title as its heading, then embeds the YouTube video on it set to autoplay.
//
// The slide goes to index 0, so a deck built from a list ends up in reverse
// list order. Adding the same video twice fails with a duplicate object ID.
func (b *Builder) AddVideoSlide(ctx context.Context, presentationID string, id youtube.VideoID, title string) (*VideoSlide, error) {
	slideID, titleID, videoObjectID := ObjectIDs(id)

	err := b.batchUpdate(ctx, presentationID, []*slidesapi.Request{
		{
			CreateSlide: &slidesapi.CreateSlideRequest{
				ObjectId:       slideID,
				InsertionIndex: 0,
				SlideLayoutReference: &slidesapi.LayoutReference{
					PredefinedLayout: titleOnlyLayout,
				},
				PlaceholderIdMappings: []*slidesapi.LayoutPlaceholderIdMapping{
					{
						LayoutPlaceholder: &slidesapi.Placeholder{
							Type:            "TITLE",
							Index:           0,
							ForceSendFields: []string{"Index"},
						},
						ObjectId: titleID,
					},
				},
				// A zero index is otherwise omitted and the slide appended.
				ForceSendFields: []string{"InsertionIndex"},
			},
		},
		{
			InsertText: &slidesapi.InsertTextRequest{
				ObjectId: titleID,
				Text:     title,
			},
		},
	})
	if err != nil {
		return nil, newAPIError("createSlide", presentationID, slideID, err)
	}

	// Autoplay is a property update on the element created by the same batch.
	err = b.batchUpdate(ctx, presentationID, []*slidesapi.Request{
		{
			CreateVideo: &slidesapi.CreateVideoRequest{
				ObjectId: videoObjectID,
				Id:       string(id),
				Source:   "YOUTUBE",
				ElementProperties: &slidesapi.PageElementProperties{
					PageObjectId: slideID,
					Size: &slidesapi.Size{
						Width:  &slidesapi.Dimension{Magnitude: VideoWidthPT, Unit: "PT"},
						Height: &slidesapi.Dimension{Magnitude: VideoHeightPT, Unit: "PT"},
					},
				},
			},
		},
		{
			UpdateVideoProperties: &slidesapi.UpdateVideoPropertiesRequest{
				ObjectId:        videoObjectID,
				VideoProperties: &slidesapi.VideoProperties{AutoPlay: true},
				Fields:          "autoPlay",
			},
		},
	})
	if err != nil {
		return nil, newAPIError("createVideo", presentationID, videoObjectID, err)
	}

	return &VideoSlide{
		VideoID:       id,
		Title:         title,
		SlideID:       slideID,
		TitleID:       titleID,
		VideoObjectID: videoObjectID,
	}, nil
}

func (b *Builder) batchUpdate(ctx context.Context, presentationID string, requests []*slidesapi.Request) error {
	_, err := b.service.Presentations.BatchUpdate(presentationID, &slidesapi.BatchUpdatePresentationRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}
