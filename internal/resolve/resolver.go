// Package resolve turns one input URL into a deduplicated track list
// by classifying the link and delegating to the matching provider.
package resolve

import (
	"context"
	"log/slog"

	"github.com/packlist/packlist/internal/domain"
	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/metrics"
)

// Resolver dispatches to the per-provider resolvers by link kind.
type Resolver struct {
	spotify *SpotifyResolver
	flat    *FlatResolver
	logger  *slog.Logger
}

// New creates a Resolver over the two provider collaborators.
func New(provider MetadataProvider, extractor FlatExtractor, itemCap int, logger *slog.Logger) *Resolver {
	return &Resolver{
		spotify: NewSpotifyResolver(provider, logger),
		flat:    NewFlatResolver(extractor, itemCap, logger),
		logger:  logger,
	}
}

// Resolve classifies rawURL and produces the session's track list.
// An unsupported link fails without any provider call; a resolution
// that yields no tracks fails with ErrNoTracks, distinct from provider
// errors.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*domain.Playlist, error) {
	var (
		playlist *domain.Playlist
		err      error
	)

	kind := Classify(rawURL)
	switch kind {
	case KindSpotify:
		playlist, err = r.spotify.Resolve(ctx, rawURL)
	case KindYouTube:
		playlist, err = r.flat.Resolve(ctx, rawURL)
	default:
		return nil, apperrors.ErrUnsupportedLink
	}

	if err != nil {
		r.logger.Error("resolution failed", "kind", kind, "url", rawURL, "error", err)
		return nil, err
	}

	if len(playlist.Tracks) == 0 {
		return nil, apperrors.ErrNoTracks
	}

	metrics.TracksResolved.Add(float64(len(playlist.Tracks)))
	r.logger.Info("link resolved", "kind", kind, "playlist", playlist.Name, "tracks", len(playlist.Tracks))
	return playlist, nil
}
