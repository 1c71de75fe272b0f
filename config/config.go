// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTitle is the presentation title used when none is given.
const DefaultTitle = "YouTube Videos Presentation"

// Config holds all application configuration for a conversion run.
type Config struct {
	// ClientSecretPath is the OAuth client secret JSON downloaded from the
	// Google Cloud console (default: "credentials.json").
	ClientSecretPath string `json:"client_secret_path"`
	// TokenPath is where the OAuth token cache is kept (default: "token.json").
	TokenPath string `json:"token_path"`
	// LockTimeout bounds how long to wait for the token cache lock.
	LockTimeout time.Duration `json:"lock_timeout"`

	// DefaultTitle is the presentation title when --title is not given.
	DefaultTitle string `json:"default_title"`

	// HTTPTimeout is the request timeout for watch page fetches.
	HTTPTimeout time.Duration `json:"http_timeout"`
	// UserAgent is sent with watch page fetches.
	UserAgent string `json:"user_agent"`
	// WatchURLBase is prefixed to a video ID to build its public watch page URL.
	WatchURLBase string `json:"watch_url_base"`
	// PageRPS paces watch page fetches (0 = unlimited).
	PageRPS float64 `json:"page_rps"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		ClientSecretPath: "credentials.json",
		TokenPath:        "token.json",
		LockTimeout:      5 * time.Second,
		DefaultTitle:     DefaultTitle,
		HTTPTimeout:      30 * time.Second,
		UserAgent:        "ytslides/1.0",
		WatchURLBase:     "https://www.youtube.com/watch?v=",
		PageRPS:          2.0,
	}
}

// Load loads configuration from environment variables, a .env file, a config
// file, and applies defaults.
// Priority: env vars > .env > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Config file is optional
	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load config file: %w", err)
	}

	// godotenv.Load never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytslides.json in the current
// directory or ~/.config/ytslides/ytslides.json.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytslides.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytslides", "ytslides.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSLIDES_CLIENT_SECRET"); v != "" {
		c.ClientSecretPath = v
	}
	if v := os.Getenv("YTSLIDES_TOKEN_FILE"); v != "" {
		c.TokenPath = v
	}
	if v := os.Getenv("YTSLIDES_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LockTimeout = d
		}
	}
	if v := os.Getenv("YTSLIDES_DEFAULT_TITLE"); v != "" {
		c.DefaultTitle = v
	}
	if v := os.Getenv("YTSLIDES_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("YTSLIDES_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTSLIDES_WATCH_URL_BASE"); v != "" {
		c.WatchURLBase = v
	}
	if v := os.Getenv("YTSLIDES_PAGE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.PageRPS = f
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.ClientSecretPath == "" {
		return fmt.Errorf("client_secret_path must not be empty")
	}
	if c.TokenPath == "" {
		return fmt.Errorf("token_path must not be empty")
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.WatchURLBase == "" {
		return fmt.Errorf("watch_url_base must not be empty")
	}
	if c.PageRPS < 0 {
		return fmt.Errorf("page_rps must be non-negative")
	}
	return nil
}
