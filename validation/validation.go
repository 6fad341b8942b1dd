package validation

import (
	"regexp"
	"strings"
)

// A canonical video ID is exactly 11 characters from this class.
var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// URL shapes that carry a video ID, tried in order. The first family covers
// watch, short and embed links; the second catches any youtube.com URL with
// a v query parameter regardless of path.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/.*[?&]v=([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID resolves a raw ID or a YouTube URL to a canonical
// 11-character video ID. The second return is false when the input matches
// no known shape.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)

	if videoIDPattern.MatchString(input) {
		return input, true
	}

	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(input); match != nil {
			return match[1], true
		}
	}

	return "", false
}
