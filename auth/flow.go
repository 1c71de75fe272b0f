package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// LocalServerFlow runs the installed-app consent flow: it listens on a
// loopback port, sends the user to Google's consent page, and waits for
// the redirect carrying the authorization code.
type LocalServerFlow struct {
	// Out receives the consent URL. Defaults to os.Stdout.
	Out io.Writer
	// OpenBrowser opens the consent URL. Defaults to the system browser.
	OpenBrowser func(url string) error
	// ListenAddr defaults to "127.0.0.1:0" (ephemeral port).
	ListenAddr string
	// Logger defaults to log.Default().
	Logger *log.Logger
}

type callbackResult struct {
	code string
	err  error
}

// Run blocks until the user grants or denies access, or ctx ends.
// Every failure is returned as *FlowError.
func (f *LocalServerFlow) Run(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	addr := f.ListenAddr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &FlowError{Err: fmt.Errorf("listen for callback: %w", err)}
	}

	conf := *cfg
	conf.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln)
	defer srv.Close()

	out := f.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Please visit this URL to authorize this application: %s\n", authURL)

	open := f.OpenBrowser
	if open == nil {
		open = openBrowser
	}
	if err := open(authURL); err != nil {
		f.logf("auth: could not open browser: %v", err)
	}

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, &FlowError{Err: ctx.Err()}
	case res = <-results:
	}
	if res.err != nil {
		return nil, &FlowError{Err: res.err}
	}

	tok, err := conf.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, &FlowError{Err: fmt.Errorf("exchange authorization code: %w", err)}
	}
	return tok, nil
}

// callbackHandler accepts the first redirect to "/" and reports its outcome.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = errors.New("callback state mismatch")
		case q.Get("error") != "":
			res.err = fmt.Errorf("%w: %s", ErrConsentDenied, q.Get("error"))
		case q.Get("code") == "":
			res.err = errors.New("callback has no authorization code")
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, "Authorization failed: "+res.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "The authentication flow has completed. You may close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}

func (f *LocalServerFlow) logf(format string, args ...any) {
	logger := f.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
