package youtube

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want VideoID
	}{
		{"watch URL", "https://www.youtube.com/watch?v=abc123", "abc123"},
		{"watch URL without www", "https://youtube.com/watch?v=abc123", "abc123"},
		{"watch URL with extra params", "https://www.youtube.com/watch?list=PL1&v=abc123&t=42s", "abc123"},
		{"watch URL uppercase host", "https://WWW.YouTube.com/watch?v=abc123", "abc123"},
		{"short URL", "https://youtu.be/abc123", "abc123"},
		{"short URL with timestamp", "https://youtu.be/abc123?t=10", "abc123"},
		{"embed URL", "https://youtube.com/embed/abc123", "abc123"},
		{"embed URL with www", "https://www.youtube.com/embed/abc123", "abc123"},
		{"embed URL with trailing segment", "https://www.youtube-nocookie.com/embed/abc123/extra", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDUnrecognized(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"other host", "https://example.com/watch?v=x"},
		{"watch without v", "https://youtube.com/watch"},
		{"watch with empty v", "https://www.youtube.com/watch?v="},
		{"channel page", "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw"},
		{"short URL without id", "https://youtu.be/"},
		{"embed without id", "https://www.youtube.com/embed/"},
		{"not a URL", "definitely not a link"},
		{"bad escape", "https://www.youtube.com/watch?v=%zz"},
		{"control character", "https://youtu.be/\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if err == nil {
				t.Fatalf("ExtractVideoID(%q) = %q, want error", tt.url, got)
			}
			if !errors.Is(err, ErrUnrecognizedURL) {
				t.Errorf("error = %v, want ErrUnrecognizedURL", err)
			}
			var urlErr *URLError
			if !errors.As(err, &urlErr) {
				t.Fatalf("error type = %T, want *URLError", err)
			}
			if urlErr.URL != tt.url {
				t.Errorf("URLError.URL = %q, want %q", urlErr.URL, tt.url)
			}
		})
	}
}

func TestVideoIDHelpers(t *testing.T) {
	id := VideoID("dQw4w9WgXcQ")
	if got := id.WatchURL(""); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL(\"\") = %q", got)
	}
	if got := VideoID("a/b&c").WatchURL("http://localhost/watch?v="); got != "http://localhost/watch?v=a%2Fb%26c" {
		t.Errorf("WatchURL(local) = %q", got)
	}
	if got := PlaceholderTitle(id); got != "Video dQw4w9WgXcQ" {
		t.Errorf("PlaceholderTitle() = %q", got)
	}
}
