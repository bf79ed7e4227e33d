// Package youtube extracts video identifiers from the URL shapes YouTube
// hands out and builds the canonical URLs the UI needs.
package youtube

import (
	"fmt"
	"regexp"
)

// Ordered by how common the shapes are in practice. The first capture wins.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&?#/\s]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&?#\s]+)`),
}

// ExtractVideoID returns the video identifier embedded in a YouTube URL.
// It recognizes watch, youtu.be and embed shapes, with or without extra
// query parameters. ok is false when no shape matches; malformed input is
// never an error.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

// EmbedURL returns the embeddable player URL for a video ID.
func EmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
}
