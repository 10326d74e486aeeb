// Package spotify wraps the Spotify Web API client used for playlist
// metadata resolution.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// Entry is one playlist item as reported by the provider. A zero-value
// Entry marks a removed or unavailable item; callers decide whether to
// skip it.
type Entry struct {
	Name   string
	Artist string
}

// Client wraps the Spotify API client with the two lookups the track
// resolver needs. The underlying HTTP client reuses connections and
// refreshes its token transparently.
type Client struct {
	api *spotify.Client
}

// New creates a Client using the client-credentials flow. Credentials
// come from configuration; with empty credentials the client is still
// constructed and every call fails with an auth error at request time.
func New(ctx context.Context, clientID, clientSecret string) *Client {
	if clientID == "" || clientSecret == "" {
		slog.Warn("spotify credentials not configured, playlist metadata lookups will fail")
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	httpClient := conf.Client(ctx)
	return &Client{api: spotify.New(httpClient, spotify.WithRetry(true))}
}

// PlaylistName returns the display name of a playlist.
func (c *Client) PlaylistName(ctx context.Context, playlistID string) (string, error) {
	playlist, err := c.api.GetPlaylist(ctx, spotify.ID(playlistID))
	if err != nil {
		return "", fmt.Errorf("getting playlist: %w", err)
	}
	return playlist.Name, nil
}

// PlaylistEntries returns every item of a playlist, following
// pagination until exhausted. Removed items come back as zero-value
// entries.
func (c *Client) PlaylistEntries(ctx context.Context, playlistID string) ([]Entry, error) {
	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("getting playlist items: %w", err)
	}

	var entries []Entry
	for {
		for _, item := range page.Items {
			entries = append(entries, convertItem(item))
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("getting next page: %w", err)
		}
	}

	return entries, nil
}

func convertItem(item spotify.PlaylistItem) Entry {
	track := item.Track.Track
	if track == nil {
		return Entry{}
	}

	var artist string
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	return Entry{Name: track.Name, Artist: artist}
}
