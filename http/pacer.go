package http

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Pacer spaces out requests to each host with a token bucket of burst 1,
// so the first request to a host goes out immediately. It never backs off.
// A nil *Pacer does not pace.
type Pacer struct {
	rps   rate.Limit
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewPacer allows rps requests per second per host. rps <= 0 disables pacing.
func NewPacer(rps float64) *Pacer {
	if rps <= 0 {
		return nil
	}
	return &Pacer{rps: rate.Limit(rps), hosts: make(map[string]*rate.Limiter)}
}

// Wait blocks until a request to rawURL may be sent or ctx ends.
func (p *Pacer) Wait(ctx context.Context, rawURL string) error {
	if p == nil {
		return nil
	}
	return p.limiter(hostOf(rawURL)).Wait(ctx)
}

func (p *Pacer) limiter(host string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.hosts[host]
	if !ok {
		l = rate.NewLimiter(p.rps, 1)
		p.hosts[host] = l
	}
	return l
}

// hostOf returns the lowercased host of rawURL without its port.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
