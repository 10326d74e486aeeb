// Package session owns the end-to-end lifecycle of one download
// session: classify, resolve, fetch, package, notify.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/packlist/packlist/internal/domain"
	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/fetch"
	"github.com/packlist/packlist/internal/metrics"
	"github.com/packlist/packlist/internal/sanitize"
)

// Sink receives status, progress and terminal messages for one session.
type Sink interface {
	Send(v any) error
}

// TrackResolver turns the input URL into a deduplicated track list.
type TrackResolver interface {
	Resolve(ctx context.Context, rawURL string) (*domain.Playlist, error)
}

// BatchFetcher runs the bounded-concurrency fetch batch.
type BatchFetcher interface {
	Run(ctx context.Context, tracks []domain.Track, destDir string, onProgress func(fetch.Progress)) fetch.Result
}

// Packager archives a session directory and disposes of it.
type Packager interface {
	Package(srcDir, baseName string) (string, error)
}

// Orchestrator drives one session per connection through the state
// machine Idle → Analyzing → Resolving → Downloading → Packaging →
// Ready, with Failed as the other terminal state.
type Orchestrator struct {
	resolver      TrackResolver
	scheduler     BatchFetcher
	packager      Packager
	tempRoot      string
	publicBaseURL string
	logger        *slog.Logger
}

// NewOrchestrator wires a session orchestrator.
func NewOrchestrator(
	resolver TrackResolver,
	scheduler BatchFetcher,
	packager Packager,
	tempRoot string,
	publicBaseURL string,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		resolver:      resolver,
		scheduler:     scheduler,
		packager:      packager,
		tempRoot:      tempRoot,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Run handles one session to its terminal message. Every failure path
// emits exactly one error message; the temporary directory, once
// created, is removed no matter how the session ends.
func (o *Orchestrator) Run(ctx context.Context, rawURL string, sink Sink) {
	metrics.SessionsStarted.Inc()

	if err := o.run(ctx, rawURL, sink); err != nil {
		metrics.SessionsFailed.Inc()
		o.logger.Error("session failed", "url", rawURL, "error", err)
		o.send(sink, domain.ErrorMessage{Error: apperrors.UserMessage(err)})
		return
	}

	metrics.SessionsCompleted.Inc()
}

func (o *Orchestrator) run(ctx context.Context, rawURL string, sink Sink) error {
	// Analyzing and Resolving happen before any temp state exists, so
	// failures up to here need no cleanup.
	o.send(sink, domain.StatusMessage{Status: "ANALYZING LINK..."})

	playlist, err := o.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return err
	}

	sess := &domain.Session{
		ID:           domain.NewSessionID(),
		PlaylistName: playlist.Name,
		Tracks:       playlist.Tracks,
		CreatedAt:    time.Now(),
	}
	sess.TempDir = filepath.Join(o.tempRoot, "temp_"+sess.ID)

	if err := os.MkdirAll(sess.TempDir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	o.logger.Info("session started",
		"session_id", sess.ID,
		"playlist", sess.PlaylistName,
		"tracks", len(sess.Tracks),
	)

	if err := o.process(ctx, sess, sink); err != nil {
		if rmErr := os.RemoveAll(sess.TempDir); rmErr != nil {
			o.logger.Error("failed to clean up temp directory", "session_id", sess.ID, "error", rmErr)
		}
		return err
	}
	return nil
}

func (o *Orchestrator) process(ctx context.Context, sess *domain.Session, sink Sink) error {
	total := len(sess.Tracks)
	o.send(sink, domain.StatusMessage{Status: fmt.Sprintf("STARTING DOWNLOAD (%d ITEMS)...", total)})

	result := o.scheduler.Run(ctx, sess.Tracks, sess.TempDir, func(p fetch.Progress) {
		o.send(sink, domain.ProgressMessage{
			Progress: p.Percent,
			Status:   fmt.Sprintf("PROCESSED: %d/%d", p.Completed, p.Total),
		})
	})

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("session cancelled: %w", err)
	}

	if result.Failed > 0 {
		o.send(sink, domain.StatusMessage{
			Status: fmt.Sprintf("DOWNLOADED: %d/%d (FAILED: %d)", result.Succeeded, total, result.Failed),
		})
	}

	o.send(sink, domain.StatusMessage{Status: "PACKAGING FILES..."})

	baseName := fmt.Sprintf("%s_%s", sanitize.Name(sess.PlaylistName), sess.ID)
	filename, err := o.packager.Package(sess.TempDir, baseName)
	if err != nil {
		return err
	}

	o.send(sink, domain.ReadyMessage{
		Status:      domain.StatusReady,
		DownloadURL: o.publicBaseURL + "/download_once/" + filename,
		Filename:    filename,
	})

	o.logger.Info("session ready", "session_id", sess.ID, "filename", filename)
	return nil
}

// send pushes one message; a dead transport is logged, not fatal, so
// cleanup still runs.
func (o *Orchestrator) send(sink Sink, v any) {
	if err := sink.Send(v); err != nil {
		o.logger.Warn("failed to send message", "error", err)
	}
}
