package session

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/packlist/packlist/internal/archive"
	"github.com/packlist/packlist/internal/domain"
	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/fetch"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSink struct {
	mu       sync.Mutex
	messages []any
}

func (s *recordingSink) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, v)
	return nil
}

func (s *recordingSink) last() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil
	}
	return s.messages[len(s.messages)-1]
}

func (s *recordingSink) progressPercents() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var percents []int
	for _, m := range s.messages {
		if p, ok := m.(domain.ProgressMessage); ok {
			percents = append(percents, p.Progress)
		}
	}
	return percents
}

type stubResolver struct {
	playlist *domain.Playlist
	err      error
}

func (r *stubResolver) Resolve(ctx context.Context, rawURL string) (*domain.Playlist, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.playlist, nil
}

// writingFetcher simulates the extraction tool by dropping one file per
// track, failing for configured track names.
type writingFetcher struct {
	failFor map[string]bool
}

func (f *writingFetcher) Fetch(ctx context.Context, track domain.Track, destDir string) error {
	if f.failFor[track.Name] {
		return errors.New("simulated tool error")
	}
	return os.WriteFile(filepath.Join(destDir, track.Name+".mp3"), []byte("audio"), 0o644)
}

type failingPackager struct{}

func (failingPackager) Package(srcDir, baseName string) (string, error) {
	return "", &apperrors.PackagingError{Err: errors.New("disk full")}
}

func tracks(n int) []domain.Track {
	out := make([]domain.Track, n)
	for i := range out {
		out[i] = domain.Track{Name: fmt.Sprintf("track-%d", i), URL: fmt.Sprintf("https://u/%d", i)}
	}
	return out
}

func newTestOrchestrator(t *testing.T, resolver TrackResolver, fetcher fetch.TrackFetcher, packager Packager) (*Orchestrator, string, string) {
	t.Helper()
	tempRoot := t.TempDir()
	publicDir := t.TempDir()

	logger := newTestLogger()
	scheduler := fetch.NewScheduler(fetcher, 4, logger)
	if packager == nil {
		packager = archive.NewPackager(publicDir, logger)
	}

	o := NewOrchestrator(resolver, scheduler, packager, tempRoot, "http://localhost:8080", logger)
	return o, tempRoot, publicDir
}

func assertTempRootEmpty(t *testing.T, tempRoot string) {
	t.Helper()
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		t.Fatalf("failed to read temp root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp root must be empty, found %d entries", len(entries))
	}
}

func TestOrchestrator_HappyPath(t *testing.T) {
	resolver := &stubResolver{playlist: &domain.Playlist{
		Name: "Road Trip",
		Tracks: []domain.Track{
			{Name: "Song A", Artist: "Artist 1"},
			{Name: "Song B", Artist: "Artist 2"},
		},
	}}
	o, tempRoot, publicDir := newTestOrchestrator(t, resolver, &writingFetcher{}, nil)
	sink := &recordingSink{}

	o.Run(context.Background(), "https://open.spotify.com/playlist/X", sink)

	ready, ok := sink.last().(domain.ReadyMessage)
	if !ok {
		t.Fatalf("expected terminal ReadyMessage, got %T: %+v", sink.last(), sink.last())
	}
	if ready.Status != domain.StatusReady {
		t.Errorf("expected status %q, got %q", domain.StatusReady, ready.Status)
	}
	if !strings.HasSuffix(ready.Filename, ".zip") {
		t.Errorf("expected a .zip filename, got %q", ready.Filename)
	}
	if !strings.HasPrefix(ready.Filename, "Road Trip_") {
		t.Errorf("filename must start with the sanitized playlist name, got %q", ready.Filename)
	}
	if !strings.HasPrefix(ready.DownloadURL, "http://localhost:8080/download_once/") {
		t.Errorf("unexpected download URL %q", ready.DownloadURL)
	}

	if _, err := os.Stat(filepath.Join(publicDir, ready.Filename)); err != nil {
		t.Errorf("archive must exist in the public dir: %v", err)
	}
	assertTempRootEmpty(t, tempRoot)

	percents := sink.progressPercents()
	if len(percents) != 2 || percents[len(percents)-1] != 100 {
		t.Errorf("expected 2 progress messages ending at 100, got %v", percents)
	}
}

func TestOrchestrator_UnsupportedLink(t *testing.T) {
	resolver := &stubResolver{err: apperrors.ErrUnsupportedLink}
	o, tempRoot, _ := newTestOrchestrator(t, resolver, &writingFetcher{}, nil)
	sink := &recordingSink{}

	o.Run(context.Background(), "https://example.com/abc", sink)

	errMsg, ok := sink.last().(domain.ErrorMessage)
	if !ok {
		t.Fatalf("expected terminal ErrorMessage, got %T", sink.last())
	}
	if errMsg.Error != "LINK NOT SUPPORTED" {
		t.Errorf("expected 'LINK NOT SUPPORTED', got %q", errMsg.Error)
	}
	assertTempRootEmpty(t, tempRoot)
}

func TestOrchestrator_NoTracks(t *testing.T) {
	resolver := &stubResolver{err: apperrors.ErrNoTracks}
	o, tempRoot, publicDir := newTestOrchestrator(t, resolver, &writingFetcher{}, nil)
	sink := &recordingSink{}

	o.Run(context.Background(), "https://www.youtube.com/playlist?list=PL1", sink)

	errMsg, ok := sink.last().(domain.ErrorMessage)
	if !ok {
		t.Fatalf("expected terminal ErrorMessage, got %T", sink.last())
	}
	if errMsg.Error != "NO DOWNLOADABLE SONGS FOUND" {
		t.Errorf("expected 'NO DOWNLOADABLE SONGS FOUND', got %q", errMsg.Error)
	}

	entries, err := os.ReadDir(publicDir)
	if err != nil {
		t.Fatalf("failed to read public dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no packaging may happen for an empty resolution")
	}
	assertTempRootEmpty(t, tempRoot)
}

func TestOrchestrator_PartialFetchFailureStillPackages(t *testing.T) {
	resolver := &stubResolver{playlist: &domain.Playlist{
		Name:   "Mostly Fine",
		Tracks: tracks(5),
	}}
	fetcher := &writingFetcher{failFor: map[string]bool{"track-3": true}}
	o, tempRoot, publicDir := newTestOrchestrator(t, resolver, fetcher, nil)
	sink := &recordingSink{}

	o.Run(context.Background(), "https://open.spotify.com/playlist/X", sink)

	ready, ok := sink.last().(domain.ReadyMessage)
	if !ok {
		t.Fatalf("expected terminal ReadyMessage, got %T", sink.last())
	}

	r, err := zip.OpenReader(filepath.Join(publicDir, ready.Filename))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer r.Close()
	if len(r.File) != 4 {
		t.Errorf("expected 4 files in the archive, got %d", len(r.File))
	}

	percents := sink.progressPercents()
	if len(percents) != 5 || percents[len(percents)-1] != 100 {
		t.Errorf("progress must reach 100 despite the failure, got %v", percents)
	}
	assertTempRootEmpty(t, tempRoot)
}

func TestOrchestrator_PackagingFailureCleansUp(t *testing.T) {
	resolver := &stubResolver{playlist: &domain.Playlist{
		Name:   "Doomed",
		Tracks: tracks(2),
	}}
	o, tempRoot, _ := newTestOrchestrator(t, resolver, &writingFetcher{}, failingPackager{})
	sink := &recordingSink{}

	o.Run(context.Background(), "https://open.spotify.com/playlist/X", sink)

	if _, ok := sink.last().(domain.ErrorMessage); !ok {
		t.Fatalf("expected terminal ErrorMessage, got %T", sink.last())
	}
	assertTempRootEmpty(t, tempRoot)
}

func TestOrchestrator_CancelledSessionCleansUp(t *testing.T) {
	resolver := &stubResolver{playlist: &domain.Playlist{
		Name:   "Interrupted",
		Tracks: tracks(3),
	}}
	o, tempRoot, _ := newTestOrchestrator(t, resolver, &writingFetcher{}, nil)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o.Run(ctx, "https://open.spotify.com/playlist/X", sink)

	if _, ok := sink.last().(domain.ErrorMessage); !ok {
		t.Fatalf("expected terminal ErrorMessage after cancellation, got %T", sink.last())
	}
	assertTempRootEmpty(t, tempRoot)
}

func TestOrchestrator_SessionIDsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := domain.NewSessionID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session ID %q", id)
		}
		seen[id] = struct{}{}
	}
}
