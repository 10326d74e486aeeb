package resolve

import "strings"

// Kind is the resolution strategy selected for an input URL.
type Kind string

const (
	KindSpotify     Kind = "spotify"
	KindYouTube     Kind = "youtube"
	KindUnsupported Kind = "unsupported"
)

// Classify selects a resolution strategy by domain matching. No network
// access; deterministic.
func Classify(rawURL string) Kind {
	switch {
	case strings.Contains(rawURL, "spotify.com"):
		return KindSpotify
	case strings.Contains(rawURL, "youtube.com"), strings.Contains(rawURL, "youtu.be"):
		return KindYouTube
	default:
		return KindUnsupported
	}
}
