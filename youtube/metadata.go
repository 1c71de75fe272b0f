package youtube

import (
	"context"
	"fmt"

	ytapi "google.golang.org/api/youtube/v3"
)

// MetadataClient looks up a video's title from a metadata service.
type MetadataClient interface {
	// VideoTitle returns the title of the video. found is false when the
	// service answered but has no such video.
	VideoTitle(ctx context.Context, id VideoID) (title string, found bool, err error)
}

// APIMetadataClient implements MetadataClient using the YouTube Data API v3.
type APIMetadataClient struct {
	service *ytapi.Service
}

// NewAPIMetadataClient wraps an authenticated YouTube Data API service.
func NewAPIMetadataClient(service *ytapi.Service) *APIMetadataClient {
	return &APIMetadataClient{service: service}
}

// VideoTitle fetches the video's snippet and returns its title.
// videos.list costs 1 quota unit.
func (c *APIMetadataClient) VideoTitle(ctx context.Context, id VideoID) (string, bool, error) {
	resp, err := c.service.Videos.List([]string{"snippet"}).
		Id(string(id)).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("youtube: videos.list %s: %w", id, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", false, nil
	}
	return resp.Items[0].Snippet.Title, true, nil
}
