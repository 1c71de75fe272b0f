package auth

import (
	"errors"
)

// Sentinel errors for credential acquisition.
var (
	// ErrClientSecretMissing indicates the OAuth client secret file does not exist.
	ErrClientSecretMissing = errors.New("auth: client secret file not found")
	// ErrConsentDenied indicates the user declined the consent screen.
	ErrConsentDenied = errors.New("auth: consent denied")
	// ErrNoToken indicates the token store holds no token yet.
	ErrNoToken = errors.New("auth: no stored token")
)

// ConfigError reports an unusable OAuth client secret configuration.
// It is fatal and raised before any remote call.
type ConfigError struct {
	// Path is the client secret file that was read.
	Path string
	// Err is the underlying error (ErrClientSecretMissing, an I/O or parse error).
	Err error
}

// Error returns a string representation of the configuration error.
func (e *ConfigError) Error() string {
	return "auth: client secret " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ConfigError) Unwrap() error { return e.Err }

// FlowError reports a consent flow that did not produce a token:
// the user denied access, the callback was invalid, the context ended, or
// the authorization code could not be exchanged.
type FlowError struct {
	Err error
}

// Error returns a string representation of the flow error.
func (e *FlowError) Error() string {
	return "auth: consent flow failed: " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *FlowError) Unwrap() error { return e.Err }
