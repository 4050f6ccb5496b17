package transcript

import (
	"fmt"
	"regexp"
)

// Patterns for the supported YouTube URL shapes: watch URLs, short
// youtu.be links, embed URLs, and a bare 11-character video ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?.*?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID extracts the canonical 11-character video ID from any of
// the supported URL shapes. Per-video maps across the pipeline are keyed by
// this ID so URL variants of the same video collapse into one entry.
func ExtractVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if matches := pattern.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video ID from URL: %s", url)
}
