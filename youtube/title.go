package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// titleSuffix is appended by YouTube to every watch page <title>.
const titleSuffix = " - YouTube"

// PageFetcher downloads a public web page.
// *Client from ytslides/http implements it.
type PageFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// TitleResolver turns a VideoID into a display title. It prefers the
// metadata service and falls back to scraping the public watch page.
type TitleResolver struct {
	// Metadata is the preferred source. May be nil.
	Metadata MetadataClient
	// Pages fetches the watch page when Metadata is nil or fails.
	Pages PageFetcher
	// WatchURLBase defaults to DefaultWatchURLBase.
	WatchURLBase string
	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Resolve returns the title of the video. It never fails: any error is
// logged and PlaceholderTitle(id) is returned instead.
func (r *TitleResolver) Resolve(ctx context.Context, id VideoID) string {
	if r.Metadata != nil {
		title, found, err := r.Metadata.VideoTitle(ctx, id)
		if err == nil {
			if !found {
				return PlaceholderTitle(id)
			}
			return title
		}
		r.logf("youtube: metadata lookup for %s failed, falling back to watch page: %v", id, err)
	}

	title, err := r.pageTitle(ctx, id)
	if err != nil {
		r.logf("youtube: error getting title for video %s: %v", id, err)
		return PlaceholderTitle(id)
	}
	return title
}

// pageTitle fetches the watch page and extracts its <title>.
func (r *TitleResolver) pageTitle(ctx context.Context, id VideoID) (string, error) {
	if r.Pages == nil {
		return "", errors.New("no page fetcher configured")
	}

	page, err := r.Pages.Get(ctx, id.WatchURL(r.WatchURLBase))
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}
	return ParsePageTitle(page)
}

// ParsePageTitle extracts the document title from a watch page and strips
// the " - YouTube" suffix.
func ParsePageTitle(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse watch page: %w", err)
	}

	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", ErrNoPageTitle
	}

	title := strings.TrimRightFunc(sel.Text(), unicode.IsSpace)
	title = strings.TrimSpace(strings.TrimSuffix(title, titleSuffix))
	if title == "" {
		return "", ErrNoPageTitle
	}
	return title, nil
}

func (r *TitleResolver) logf(format string, args ...any) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
