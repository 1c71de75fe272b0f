// Package auth obtains and caches the Google OAuth2 credential used to call
// the Slides and YouTube Data APIs on the user's behalf.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	slidesapi "google.golang.org/api/slides/v1"
	ytapi "google.golang.org/api/youtube/v3"

	"ytslides/internal/storage"
)

// Scopes are the access scopes requested from the user: presentation
// read/write and video metadata read-only. Changing them requires deleting
// the cached token.
var Scopes = []string{
	slidesapi.PresentationsScope,
	ytapi.YoutubeReadonlyScope,
}

// ConsentFlow obtains a fresh token interactively.
type ConsentFlow interface {
	Run(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// Manager hands out a valid credential, reusing or refreshing the stored
// token when possible and falling back to the consent flow otherwise.
type Manager struct {
	// ClientSecretPath is the OAuth client JSON (installed or web app). It is
	// read only when the consent flow has to run.
	ClientSecretPath string
	// Scopes defaults to Scopes.
	Scopes []string
	Store  TokenStore
	Flow   ConsentFlow
	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Credential is an authorized token source whose refreshed tokens are
// written back to the store.
type Credential struct {
	source oauth2.TokenSource
}

// Acquire returns a credential ready for API calls.
//
// A stored credential is used if its token is valid and refreshed if it has
// expired but carries a refresh token; neither path reads the client secret.
// Otherwise the consent flow runs: a missing or unparseable client secret
// yields *ConfigError, and a failed flow yields *FlowError.
func (m *Manager) Acquire(ctx context.Context) (*Credential, error) {
	stored, err := m.Store.Load()
	switch {
	case err == nil:
	case errors.Is(err, ErrNoToken):
		stored = nil
	case errors.Is(err, storage.ErrStorageCorrupt):
		m.logf("auth: ignoring unreadable token cache: %v", err)
		stored = nil
	default:
		return nil, fmt.Errorf("load token: %w", err)
	}

	if stored != nil {
		cfg := stored.Config()
		tok := stored.OAuthToken()
		if tok.Valid() {
			return m.credential(ctx, cfg, tok), nil
		}
		if tok.RefreshToken != "" && cfg.ClientID != "" {
			fresh, err := cfg.TokenSource(ctx, tok).Token()
			if err == nil {
				if err := m.Store.Save(NewStoredCredential(cfg, fresh)); err != nil {
					return nil, fmt.Errorf("save refreshed token: %w", err)
				}
				return m.credential(ctx, cfg, fresh), nil
			}
			m.logf("auth: token refresh failed, starting consent flow: %v", err)
		}
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, err
	}
	tok, err := m.Flow.Run(ctx, cfg)
	if err != nil {
		var flowErr *FlowError
		if !errors.As(err, &flowErr) {
			err = &FlowError{Err: err}
		}
		return nil, err
	}
	if err := m.Store.Save(NewStoredCredential(cfg, tok)); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return m.credential(ctx, cfg, tok), nil
}

// loadConfig reads the client secret file into an oauth2.Config.
func (m *Manager) loadConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(m.ClientSecretPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Path: m.ClientSecretPath, Err: ErrClientSecretMissing}
		}
		return nil, &ConfigError{Path: m.ClientSecretPath, Err: err}
	}

	scopes := m.Scopes
	if len(scopes) == 0 {
		scopes = Scopes
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, &ConfigError{Path: m.ClientSecretPath, Err: err}
	}
	return cfg, nil
}

func (m *Manager) credential(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) *Credential {
	src := &persistingSource{
		base:   oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx, tok)),
		config: cfg,
		store:  m.Store,
		last:   tok.AccessToken,
		logger: m.logger(),
	}
	return &Credential{source: src}
}

func (m *Manager) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}

func (m *Manager) logf(format string, args ...any) {
	m.logger().Printf(format, args...)
}

// TokenSource returns the credential's token source, for use with
// option.WithTokenSource.
func (c *Credential) TokenSource() oauth2.TokenSource { return c.source }

// persistingSource saves every newly minted token so the next run can reuse it.
type persistingSource struct {
	base   oauth2.TokenSource
	config *oauth2.Config
	store  TokenStore
	logger *log.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.store.Save(NewStoredCredential(s.config, tok)); err != nil {
			s.logger.Printf("auth: could not persist refreshed token: %v", err)
		} else {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}
