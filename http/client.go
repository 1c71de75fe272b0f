// Package http fetches public web pages (YouTube watch pages) without
// credentials. Requests are paced per host and attempted exactly once.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds page client settings.
type Config struct {
	// Timeout bounds one request including the body read.
	Timeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// RequestsPerSecond paces requests per host. 0 means unpaced.
	RequestsPerSecond float64
	// MaxBodyBytes truncates larger bodies. The <title> sits in <head>,
	// well within the default.
	MaxBodyBytes int64
}

// DefaultConfig returns the settings used for watch page fetches.
func DefaultConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		UserAgent:         "ytslides/1.0",
		RequestsPerSecond: 2,
		MaxBodyBytes:      4 << 20,
	}
}

// Client fetches pages. It is safe for concurrent use.
type Client struct {
	base   *http.Client
	config Config
	pacer  *Pacer
}

// New creates a client. A nil cfg means DefaultConfig().
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 2

	return &Client{
		base:   &http.Client{Timeout: c.Timeout, Transport: transport},
		config: c,
		pacer:  NewPacer(c.RequestsPerSecond),
	}
}

// Get fetches url once, after waiting for the host's pacing slot, and
// returns the body of a 2xx answer. A non-2xx answer is returned as
// *HTTPError; a transport failure wraps ErrFetchFailed.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.pacer.Wait(ctx, url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	// Without this YouTube may answer with a localized consent interstitial.
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &HTTPError{
			URL:        url,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header, time.Now()),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	return body, nil
}

// Close drops idle connections.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	return nil
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
		return d
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
