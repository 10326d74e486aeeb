// Package fetch downloads resolved tracks through the extraction tool,
// one bounded-concurrency batch per session.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/packlist/packlist/internal/domain"
	"github.com/packlist/packlist/internal/metrics"
	"github.com/packlist/packlist/internal/sanitize"
)

const fallbackArtist = "Unknown Artist"

// Downloader is the download-and-transcode side of the extraction tool.
type Downloader interface {
	DownloadAudio(ctx context.Context, target, outputTemplate string) error
}

// Fetcher downloads a single track into a destination directory.
type Fetcher struct {
	tool    Downloader
	timeout time.Duration
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher with a per-track time budget.
func NewFetcher(tool Downloader, timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{tool: tool, timeout: timeout, logger: logger}
}

// Fetch downloads one track. With a source URL the exact resource is
// fetched; otherwise a best-effort search query built from name and
// artist takes the first result. Transcoding, thumbnail embedding and
// tagging are the tool's job. A failure is logged and returned, never
// retried here.
func (f *Fetcher) Fetch(ctx context.Context, track domain.Track, destDir string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	stem := sanitize.Name(track.Name)
	template := filepath.Join(destDir, stem+".%(ext)s")

	target := track.URL
	if target == "" {
		artist := track.Artist
		if artist == "" {
			artist = fallbackArtist
		}
		target = fmt.Sprintf("ytsearch1:%s - %s audio", track.Name, artist)
	}

	metrics.FetchesTotal.Inc()
	start := time.Now()
	err := f.tool.DownloadAudio(ctx, target, template)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FetchesFailed.Inc()
		f.logger.Error("track fetch failed", "track", track.Name, "error", err)
		return err
	}

	metrics.FetchesSuccess.Inc()
	f.logger.Debug("track fetched", "track", track.Name)
	return nil
}
