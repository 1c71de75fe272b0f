// Package ytslides turns a list of YouTube links into a Google Slides
// presentation with one autoplaying video per slide.
//
// Overview
//
// A run authorizes against Google on the user's behalf, creates an empty
// presentation, and then for every link in the input file:
//
//   - extracts the video ID (youtube.ExtractVideoID)
//   - resolves a display title (youtube.TitleResolver)
//   - adds a slide holding the title and the embedded video (slides.Builder)
//
// A bad link is reported and skipped; the remaining links are still
// processed. Each slide is inserted at the front of the deck, so the final
// deck lists the videos in reverse input order.
//
// Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	driver, err := pipeline.Setup(ctx, cfg, os.Stdout)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer driver.Close()
//	report, err := driver.Run(ctx, "links.txt", "My Videos")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(report.URL)
//
// Configuration
//
// Settings are loaded from several sources:
//
//   1. Environment variables (highest priority)
//   2. A .env file in the working directory
//   3. Config file (ytslides.json or ~/.config/ytslides/ytslides.json)
//   4. Default values (lowest priority)
//
// Environment variables:
//
//   - YTSLIDES_CLIENT_SECRET: OAuth client secret file (credentials.json)
//   - YTSLIDES_TOKEN_FILE: OAuth token cache (token.json)
//   - YTSLIDES_LOCK_TIMEOUT: Wait limit for the token cache lock
//   - YTSLIDES_DEFAULT_TITLE: Presentation title when --title is not given
//   - YTSLIDES_HTTP_TIMEOUT: Watch page request timeout
//   - YTSLIDES_USER_AGENT: User-Agent for watch page requests
//   - YTSLIDES_WATCH_URL_BASE: Prefix turning a video ID into its watch page URL
//   - YTSLIDES_PAGE_RPS: Watch page requests per second (0 = unlimited)
//
// Error Handling
//
// Setup errors are fatal and typed:
//
//	if errors.Is(err, ytslides.ErrClientSecretMissing) {
//		fmt.Println("download credentials.json from the Google Cloud console")
//	}
//
// Per-link failures are recorded in pipeline.ItemResult:
//
//	var apiErr *ytslides.APIError
//	if errors.As(res.Err, &apiErr) {
//		fmt.Printf("%s failed with status %d\n", apiErr.Op, apiErr.StatusCode)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - auth: OAuth2 credential acquisition and token caching
//   - youtube: Video ID extraction and title resolution
//   - slides: Presentation and video slide creation
//   - pipeline: The end-to-end conversion
//   - config: Configuration management
//   - http: Paced client for public watch pages
//
package ytslides
