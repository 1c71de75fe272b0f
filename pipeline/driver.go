// Package pipeline turns a file of YouTube links into a Google Slides deck,
// one autoplaying video per slide.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	slidesapi "google.golang.org/api/slides/v1"
	ytapi "google.golang.org/api/youtube/v3"

	"ytslides/config"
	yhttp "ytslides/http"
	"ytslides/slides"
	"ytslides/youtube"
)

// PresentationBuilder creates the deck and its slides.
// *slides.Builder implements it.
type PresentationBuilder interface {
	CreatePresentation(ctx context.Context, title string) (string, error)
	AddVideoSlide(ctx context.Context, presentationID string, id youtube.VideoID, title string) (*slides.VideoSlide, error)
}

// TitleResolver names a video. *youtube.TitleResolver implements it.
type TitleResolver interface {
	Resolve(ctx context.Context, id youtube.VideoID) string
}

// Driver runs a conversion: create the deck, then one slide per link.
// Links are processed sequentially; a failing link is reported and skipped.
type Driver struct {
	Builder PresentationBuilder
	Titles  TitleResolver
	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer

	pages *yhttp.Client
}

// ItemResult is the outcome for one input link. Exactly one of Slide and
// Err is set.
type ItemResult struct {
	URL     string
	VideoID youtube.VideoID
	Title   string
	Slide   *slides.VideoSlide
	Err     error
}

// OK reports whether the slide was added.
func (r ItemResult) OK() bool { return r.Err == nil }

// Report summarizes a run.
type Report struct {
	PresentationID string
	URL            string
	Results        []ItemResult
}

// Succeeded returns the number of slides added.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of links that produced no slide.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// NewDriver wires the services into a driver using cfg for the watch page
// client. The caller should Close the driver when done.
func NewDriver(cfg *config.Config, out io.Writer, slidesSvc *slidesapi.Service, ytSvc *ytapi.Service, logger *log.Logger) *Driver {
	pages := yhttp.New(&yhttp.Config{
		Timeout:           cfg.HTTPTimeout,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.PageRPS,
	})

	var metadata youtube.MetadataClient
	if ytSvc != nil {
		metadata = youtube.NewAPIMetadataClient(ytSvc)
	}

	return &Driver{
		Builder: slides.NewBuilder(slidesSvc),
		Titles: &youtube.TitleResolver{
			Metadata:     metadata,
			Pages:        pages,
			WatchURLBase: cfg.WatchURLBase,
			Logger:       logger,
		},
		Out:   out,
		pages: pages,
	}
}

// Close releases idle watch page connections.
func (d *Driver) Close() error {
	if d.pages == nil {
		return nil
	}
	return d.pages.Close()
}

// Run creates a presentation titled title and adds one slide per link in
// inputPath. Failing to create the deck or read the input is fatal; a
// failing link is printed and skipped. A cancelled ctx stops the loop and
// returns the partial report with ctx.Err().
func (d *Driver) Run(ctx context.Context, inputPath, title string) (*Report, error) {
	out := d.out()

	presentationID, err := d.Builder.CreatePresentation(ctx, title)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Created presentation with ID: %s\n", presentationID)

	report := &Report{
		PresentationID: presentationID,
		URL:            slides.PresentationURL(presentationID),
	}

	urls, err := ReadURLFile(inputPath)
	if err != nil {
		return report, err
	}

	for _, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := d.ProcessURL(ctx, presentationID, rawURL)
		report.Results = append(report.Results, res)
		if res.OK() {
			fmt.Fprintf(out, "Added slide for video: %s\n", res.Title)
		} else {
			fmt.Fprintf(out, "Error processing URL %s: %v\n", rawURL, res.Err)
		}
	}

	fmt.Fprintf(out, "Presentation created successfully: %s\n", report.URL)
	return report, nil
}

// ProcessURL extracts the video ID, resolves its title, and adds the slide.
// Errors are returned in the result, never raised.
func (d *Driver) ProcessURL(ctx context.Context, presentationID, rawURL string) ItemResult {
	res := ItemResult{URL: rawURL}

	id, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		res.Err = err
		return res
	}
	res.VideoID = id
	res.Title = d.Titles.Resolve(ctx, id)

	slide, err := d.Builder.AddVideoSlide(ctx, presentationID, id, res.Title)
	if err != nil {
		res.Err = err
		return res
	}
	res.Slide = slide
	return res
}

func (d *Driver) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}
