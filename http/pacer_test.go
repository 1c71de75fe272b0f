package http

import (
	"context"
	"testing"
	"time"
)

func TestNewPacerDisabled(t *testing.T) {
	for _, rps := range []float64{0, -1} {
		if p := NewPacer(rps); p != nil {
			t.Errorf("NewPacer(%v) = %v, want nil", rps, p)
		}
	}

	var p *Pacer
	if err := p.Wait(context.Background(), "https://www.youtube.com/"); err != nil {
		t.Errorf("nil Pacer Wait() error = %v", err)
	}
}

func TestPacerSpacesRequests(t *testing.T) {
	p := NewPacer(20) // one request every 50ms

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background(), "https://www.youtube.com/watch?v=a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	// The first request is free, the next two wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 requests took %v, want >= ~100ms", elapsed)
	}
}

func TestPacerHostsAreIndependent(t *testing.T) {
	p := NewPacer(1)

	start := time.Now()
	for _, u := range []string{
		"https://www.youtube.com/watch?v=a",
		"https://YouTu.be/b",
		"https://example.com:8443/c",
	} {
		if err := p.Wait(context.Background(), u); err != nil {
			t.Fatalf("Wait(%q) error = %v", u, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("first request per host took %v, want immediate", elapsed)
	}
	if len(p.hosts) != 3 {
		t.Errorf("tracked %d hosts, want 3", len(p.hosts))
	}
}

func TestPacerContextCanceled(t *testing.T) {
	p := NewPacer(0.1)
	if err := p.Wait(context.Background(), "https://www.youtube.com/"); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx, "https://www.youtube.com/"); err == nil {
		t.Error("expected error when the next slot is beyond the deadline")
	}
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=x": "www.youtube.com",
		"https://WWW.YouTube.com/":          "www.youtube.com",
		"http://127.0.0.1:8080/watch":       "127.0.0.1",
		"not a url":                         "",
		"::bad":                             "",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
