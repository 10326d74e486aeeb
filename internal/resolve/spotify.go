package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/packlist/packlist/internal/domain"
	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/spotify"
)

const defaultSpotifyPlaylistName = "Spotify_Playlist"

// MetadataProvider is the playlist-metadata collaborator contract.
type MetadataProvider interface {
	PlaylistName(ctx context.Context, playlistID string) (string, error)
	PlaylistEntries(ctx context.Context, playlistID string) ([]spotify.Entry, error)
}

// SpotifyResolver resolves a playlist URL through the metadata provider
// into a deduplicated track list.
type SpotifyResolver struct {
	provider MetadataProvider
	logger   *slog.Logger
}

// NewSpotifyResolver creates a resolver over the given provider.
func NewSpotifyResolver(provider MetadataProvider, logger *slog.Logger) *SpotifyResolver {
	return &SpotifyResolver{provider: provider, logger: logger}
}

// Resolve fetches the playlist descriptor and every item page, skips
// removed entries, and deduplicates by name+artist. Tracks come out
// with no URL; the fetcher falls back to a search query.
func (r *SpotifyResolver) Resolve(ctx context.Context, rawURL string) (*domain.Playlist, error) {
	playlistID, err := playlistIDFromURL(rawURL)
	if err != nil {
		return nil, &apperrors.ResolutionError{Provider: apperrors.ProviderSpotify, Err: err}
	}

	name, err := r.provider.PlaylistName(ctx, playlistID)
	if err != nil {
		return nil, &apperrors.ResolutionError{Provider: apperrors.ProviderSpotify, Err: err}
	}
	if name == "" {
		name = defaultSpotifyPlaylistName
	}

	entries, err := r.provider.PlaylistEntries(ctx, playlistID)
	if err != nil {
		return nil, &apperrors.ResolutionError{Provider: apperrors.ProviderSpotify, Err: err}
	}

	seen := domain.NewDedupSet()
	var tracks []domain.Track
	for _, entry := range entries {
		if entry.Name == "" && entry.Artist == "" {
			continue
		}

		if !seen.Add(domain.TitleArtistKey(entry.Name, entry.Artist)) {
			r.logger.Debug("duplicate track dropped", "track", entry.Name, "artist", entry.Artist)
			continue
		}

		tracks = append(tracks, domain.Track{Name: entry.Name, Artist: entry.Artist})
	}

	return &domain.Playlist{Name: name, Tracks: tracks}, nil
}

func playlistIDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing playlist URL: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "playlist" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}

	return "", fmt.Errorf("no playlist ID in URL %q", rawURL)
}
