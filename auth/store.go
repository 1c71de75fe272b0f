package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"ytslides/internal/storage"
)

// authorizedUserType marks the credential JSON written by Google's client
// libraries for an installed app after user consent.
const authorizedUserType = "authorized_user"

// StoredCredential is the persisted "authorized_user" credential: the
// client identity plus the user's tokens. It is enough to call and
// refresh without the client secret file.
type StoredCredential struct {
	Type         string    `json:"type"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	TokenURI     string    `json:"token_uri,omitempty"`
	RefreshToken string    `json:"refresh_token"`
	Token        string    `json:"token"`
	Expiry       time.Time `json:"expiry,omitzero"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// NewStoredCredential records tok as issued to the client in cfg.
func NewStoredCredential(cfg *oauth2.Config, tok *oauth2.Token) *StoredCredential {
	return &StoredCredential{
		Type:         authorizedUserType,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURI:     cfg.Endpoint.TokenURL,
		RefreshToken: tok.RefreshToken,
		Token:        tok.AccessToken,
		Expiry:       tok.Expiry,
		Scopes:       cfg.Scopes,
	}
}

// Config returns the OAuth client the credential was issued to.
func (c *StoredCredential) Config() *oauth2.Config {
	tokenURL := c.TokenURI
	if tokenURL == "" {
		tokenURL = google.Endpoint.TokenURL
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   google.Endpoint.AuthURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: c.Scopes,
	}
}

// OAuthToken returns the user's tokens.
func (c *StoredCredential) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.Token,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// TokenStore persists the user's credential between runs.
type TokenStore interface {
	// Load returns the stored credential, or ErrNoToken if there is none.
	Load() (*StoredCredential, error)
	// Save replaces the stored credential.
	Save(cred *StoredCredential) error
}

// FileTokenStore keeps the credential as JSON in one file, readable only by
// the owner. Concurrent runs are serialized by a lock on path + ".lock".
type FileTokenStore struct {
	file storage.File
}

// NewFileTokenStore returns a store backed by path.
func NewFileTokenStore(path string, lockTimeout time.Duration) *FileTokenStore {
	return &FileTokenStore{file: storage.File{Path: path, LockTimeout: lockTimeout, Entity: "token"}}
}

// Load reads the credential file.
func (s *FileTokenStore) Load() (*StoredCredential, error) {
	data, err := s.file.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, err
	}

	var cred StoredCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, s.corrupt(fmt.Errorf("%w: %v", storage.ErrStorageCorrupt, err))
	}
	if cred.Type != "" && cred.Type != authorizedUserType {
		return nil, s.corrupt(fmt.Errorf("%w: unexpected credential type %q", storage.ErrStorageCorrupt, cred.Type))
	}
	if cred.Token == "" && cred.RefreshToken == "" {
		return nil, s.corrupt(storage.ErrStorageCorrupt)
	}
	return &cred, nil
}

// Save overwrites the credential file.
func (s *FileTokenStore) Save(cred *StoredCredential) error {
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return &storage.StorageError{Op: "write", Entity: "token", ID: s.file.Path, Err: err}
	}
	return s.file.Replace(data, 0600)
}

func (s *FileTokenStore) corrupt(err error) error {
	return &storage.StorageError{Op: "read", Entity: "token", ID: s.file.Path, Err: err}
}
