package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/packlist/packlist/internal/domain"
	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/ytdlp"
)

const (
	defaultFlatPlaylistName = "YouTube_Playlist"
	defaultVideoName        = "YouTube_Video"
	defaultTrackTitle       = "Unknown_Video"
)

// FlatExtractor is the media-extraction collaborator contract for
// metadata-only playlist expansion.
type FlatExtractor interface {
	ExtractFlat(ctx context.Context, url string, limit int) (*ytdlp.Info, error)
}

// FlatResolver resolves a video or playlist URL through the extraction
// tool in flat mode, capped at itemCap entries.
type FlatResolver struct {
	extractor FlatExtractor
	itemCap   int
	logger    *slog.Logger
}

// NewFlatResolver creates a resolver over the given extractor.
func NewFlatResolver(extractor FlatExtractor, itemCap int, logger *slog.Logger) *FlatResolver {
	return &FlatResolver{extractor: extractor, itemCap: itemCap, logger: logger}
}

// Resolve expands the URL without downloading payloads. A playlist
// result is deduplicated by entry URL with URL-less entries skipped;
// a single item becomes exactly one Track carrying its canonical URL.
func (r *FlatResolver) Resolve(ctx context.Context, rawURL string) (*domain.Playlist, error) {
	info, err := r.extractor.ExtractFlat(ctx, rawURL, r.itemCap)
	if err != nil {
		return nil, &apperrors.ResolutionError{Provider: apperrors.ProviderYTDLP, Err: err}
	}

	if info.IsPlaylist() {
		return r.fromPlaylist(info), nil
	}
	return r.fromSingle(info, rawURL), nil
}

func (r *FlatResolver) fromPlaylist(info *ytdlp.Info) *domain.Playlist {
	name := info.Title
	if name == "" {
		name = defaultFlatPlaylistName
	}

	seen := domain.NewDedupSet()
	var tracks []domain.Track
	for _, entry := range info.Entries {
		if entry.URL == "" {
			continue
		}

		if !seen.Add(entry.URL) {
			r.logger.Debug("duplicate entry dropped", "url", entry.URL)
			continue
		}

		title := entry.Title
		if title == "" {
			title = fmt.Sprintf("Video_%s", entryID(entry))
		}

		tracks = append(tracks, domain.Track{Name: title, URL: entry.URL})
	}

	return &domain.Playlist{Name: name, Tracks: tracks}
}

func (r *FlatResolver) fromSingle(info *ytdlp.Info, rawURL string) *domain.Playlist {
	name := info.Title
	if name == "" {
		name = defaultVideoName
	}

	title := info.Title
	if title == "" {
		title = defaultTrackTitle
	}

	trackURL := info.OriginalURL
	if trackURL == "" {
		trackURL = info.WebpageURL
	}
	if trackURL == "" {
		trackURL = rawURL
	}

	return &domain.Playlist{
		Name:   name,
		Tracks: []domain.Track{{Name: title, URL: trackURL}},
	}
}

func entryID(entry ytdlp.Entry) string {
	if entry.ID != "" {
		return entry.ID
	}
	return "unknown"
}
