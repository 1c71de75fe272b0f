package fakegoogle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// YouTubeServer fakes the YouTube Data API v3 videos.list endpoint.
type YouTubeServer struct {
	*httptest.Server

	mu       sync.Mutex
	titles   map[string]string
	requests int

	// FailStatus, when non-zero, makes every call answer with that status.
	FailStatus int
}

// NewYouTubeServer starts a fake that knows the given video titles.
func NewYouTubeServer(t testing.TB, titles map[string]string) *YouTubeServer {
	s := &YouTubeServer{titles: make(map[string]string)}
	for id, title := range titles {
		s.titles[id] = title
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Service returns a YouTube Data API client bound to this server.
func (s *YouTubeServer) Service(t testing.TB) *ytapi.Service {
	t.Helper()
	svc, err := ytapi.NewService(context.Background(),
		option.WithEndpoint(s.URL+"/"),
		option.WithHTTPClient(s.Client()),
	)
	if err != nil {
		t.Fatalf("youtube.NewService() error = %v", err)
	}
	return svc
}

// Requests returns how many videos.list calls were received.
func (s *YouTubeServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *YouTubeServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	if r.Method != http.MethodGet || r.URL.Path != "/youtube/v3/videos" {
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}
	if s.FailStatus != 0 {
		writeError(w, s.FailStatus, "quotaExceeded")
		return
	}

	items := []map[string]any{}
	var ids []string
	for _, v := range r.URL.Query()["id"] {
		ids = append(ids, strings.Split(v, ",")...)
	}
	for _, id := range ids {
		if title, ok := s.titles[id]; ok {
			items = append(items, map[string]any{
				"kind":    "youtube#video",
				"id":      id,
				"snippet": map[string]any{"title": title},
			})
		}
	}

	writeJSON(w, map[string]any{
		"kind":  "youtube#videoListResponse",
		"items": items,
		"pageInfo": map[string]int{
			"totalResults":   len(items),
			"resultsPerPage": len(items),
		},
	})
}
