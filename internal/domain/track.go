package domain

// Track is one downloadable item produced by resolution. Either URL is
// set (direct fetch) or Name+Artist drive a search fallback; Name is
// always populated. Tracks are immutable once emitted.
type Track struct {
	Name   string
	Artist string
	URL    string
}

// Playlist is the outcome of resolution: a display name plus the
// deduplicated track list in provider order.
type Playlist struct {
	Name   string
	Tracks []Track
}

// TitleArtistKey builds the dedup key for metadata-provider tracks.
func TitleArtistKey(name, artist string) string {
	return name + "_" + artist
}

// DedupSet remembers dedup keys accepted within a single session.
type DedupSet struct {
	seen map[string]struct{}
}

// NewDedupSet returns an empty set. One set per session; never shared.
func NewDedupSet() *DedupSet {
	return &DedupSet{seen: make(map[string]struct{})}
}

// Add reports whether key was new and records it.
func (s *DedupSet) Add(key string) bool {
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Len returns the number of accepted keys.
func (s *DedupSet) Len() int {
	return len(s.seen)
}
