package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLink means the input URL matched no known provider.
	ErrUnsupportedLink = errors.New("link not supported")

	// ErrNoTracks means resolution succeeded but produced nothing to fetch.
	ErrNoTracks = errors.New("no downloadable items found")

	// ErrArchiveNotFound means the one-shot archive was already consumed
	// or never existed.
	ErrArchiveNotFound = errors.New("archive not found")
)

// ResolutionError wraps a metadata/extraction provider failure.
type ResolutionError struct {
	Provider string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s resolution failed: %v", e.Provider, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// PackagingError wraps an archive creation failure.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging failed: %v", e.Err)
}

func (e *PackagingError) Unwrap() error { return e.Err }

// Provider names used in ResolutionError.
const (
	ProviderSpotify = "spotify"
	ProviderYTDLP   = "yt-dlp"
)

// UserMessage maps an internal error to the free-text wire error field.
// Internal logic branches on the typed errors above, never on these
// strings.
func UserMessage(err error) string {
	var resErr *ResolutionError

	switch {
	case errors.Is(err, ErrUnsupportedLink):
		return "LINK NOT SUPPORTED"
	case errors.Is(err, ErrNoTracks):
		return "NO DOWNLOADABLE SONGS FOUND"
	case errors.As(err, &resErr):
		if resErr.Provider == ProviderSpotify {
			return "INVALID SPOTIFY URL"
		}
		return fmt.Sprintf("YT ERROR: %v", resErr.Err)
	default:
		return err.Error()
	}
}
