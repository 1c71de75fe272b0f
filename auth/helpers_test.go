package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// tokenServer is a fake OAuth token endpoint.
type tokenServer struct {
	*httptest.Server

	mu    sync.Mutex
	forms []url.Values
	fail  bool
}

func newTokenServer(t *testing.T) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ts.mu.Lock()
		ts.forms = append(ts.forms, r.PostForm)
		n := len(ts.forms)
		fail := ts.fail
		ts.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)
			return
		}
		fmt.Fprintf(w, `{"access_token":"access-%d","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh-new"}`, n)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) setFail(fail bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.fail = fail
}

func (ts *tokenServer) requests() []url.Values {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]url.Values(nil), ts.forms...)
}

// writeClientSecret writes an installed-app client secret pointing at tokenURL.
func writeClientSecret(t *testing.T, tokenURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	data := fmt.Sprintf(`{"installed":{"client_id":"client-id","client_secret":"client-secret",`+
		`"auth_uri":"http://auth.invalid/o/oauth2/auth","token_uri":%q,"redirect_uris":["http://localhost"]}}`, tokenURL)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write client secret: %v", err)
	}
	return path
}

// memStore is an in-memory TokenStore.
type memStore struct {
	mu      sync.Mutex
	cred    *StoredCredential
	loadErr error
	saves   int
}

func (s *memStore) Load() (*StoredCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cred == nil {
		return nil, ErrNoToken
	}
	cred := *s.cred
	return &cred, nil
}

func (s *memStore) Save(cred *StoredCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cred
	s.cred = &cp
	s.saves++
	return nil
}

func (s *memStore) current() (*StoredCredential, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.saves
}

// storedFor returns a credential issued by the fake client whose token
// endpoint is tokenURL.
func storedFor(tokenURL, access, refresh string, expiry time.Time) *StoredCredential {
	return &StoredCredential{
		Type:         "authorized_user",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURI:     tokenURL,
		RefreshToken: refresh,
		Token:        access,
		Expiry:       expiry,
	}
}

// stubFlow is a ConsentFlow returning a canned result.
type stubFlow struct {
	tok   *oauth2.Token
	err   error
	calls int
}

func (f *stubFlow) Run(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tok, nil
}
