package fetch

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/packlist/packlist/internal/domain"
	"golang.org/x/sync/errgroup"
)

// TrackFetcher downloads one track into destDir.
type TrackFetcher interface {
	Fetch(ctx context.Context, track domain.Track, destDir string) error
}

// Progress is a completion-order snapshot of the running batch.
// Completed only grows and reaches Total when the batch is done.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// Result aggregates a finished batch.
type Result struct {
	Succeeded int
	Failed    int
}

// Scheduler runs one fetch job per track with at most workers jobs in
// flight. A failed job never cancels its siblings; the batch is done
// only when every job has resolved.
type Scheduler struct {
	fetcher TrackFetcher
	workers int
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler with the given pool size.
func NewScheduler(fetcher TrackFetcher, workers int, logger *slog.Logger) *Scheduler {
	return &Scheduler{fetcher: fetcher, workers: workers, logger: logger}
}

// Run fetches all tracks and blocks until every job has resolved.
// onProgress (if non-nil) is invoked in completion order, not
// submission order, under the scheduler's lock, so observed progress
// is monotonic.
func (s *Scheduler) Run(ctx context.Context, tracks []domain.Track, destDir string, onProgress func(Progress)) Result {
	total := len(tracks)

	var (
		mu        sync.Mutex
		completed int
		failed    int
	)

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for _, track := range tracks {
		track := track
		g.Go(func() error {
			err := s.fetcher.Fetch(ctx, track, destDir)

			mu.Lock()
			completed++
			if err != nil {
				failed++
			}
			p := Progress{
				Completed: completed,
				Total:     total,
				Percent:   percent(completed, total),
			}
			if onProgress != nil {
				onProgress(p)
			}
			mu.Unlock()

			// Per-track failures are swallowed here so one broken
			// track cannot cancel the rest of the batch.
			return nil
		})
	}

	_ = g.Wait()

	result := Result{Succeeded: total - failed, Failed: failed}
	if failed > 0 {
		s.logger.Warn("batch finished with failures",
			"succeeded", result.Succeeded,
			"failed", result.Failed,
			"total", total,
		)
	} else {
		s.logger.Info("batch finished", "total", total)
	}
	return result
}

func percent(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
