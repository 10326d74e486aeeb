// Package ytdlp wraps the yt-dlp binary: flat playlist extraction and
// the download-and-transcode pipeline are both delegated to it.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes the extraction tool and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

type execRunner struct {
	path string
}

func (r *execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := firstLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Info is the tool's metadata output for one URL. Type is "playlist"
// when the URL expanded into multiple entries.
type Info struct {
	Type        string  `json:"_type"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	WebpageURL  string  `json:"webpage_url"`
	OriginalURL string  `json:"original_url"`
	Entries     []Entry `json:"entries"`
}

// IsPlaylist reports whether the extraction expanded into entries.
func (i *Info) IsPlaylist() bool {
	return i.Type == "playlist"
}

// Entry is one flat playlist item. URL may be empty for entries the
// extractor could not resolve.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Tool drives yt-dlp.
type Tool struct {
	runner Runner
}

// New returns a Tool executing the binary at path.
func New(path string) *Tool {
	return &Tool{runner: &execRunner{path: path}}
}

// NewWithRunner returns a Tool with a custom runner. Used by tests.
func NewWithRunner(r Runner) *Tool {
	return &Tool{runner: r}
}

// ExtractFlat lists playlist entries in metadata-only mode without
// downloading any payload. Expansion stops after limit items and
// broken entries are ignored instead of aborting the extraction.
func (t *Tool) ExtractFlat(ctx context.Context, url string, limit int) (*Info, error) {
	args := []string{
		"--dump-single-json",
		"--flat-playlist",
		"--ignore-errors",
		"--no-warnings",
		"--quiet",
		"--yes-playlist",
		"--playlist-end", strconv.Itoa(limit),
		url,
	}

	out, err := t.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var info Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parsing extraction output: %w", err)
	}

	return &info, nil
}

// DownloadAudio fetches target (a URL or a ytsearch query) into
// outputTemplate, extracting audio to mp3 and embedding thumbnail and
// metadata through the tool's post-processing pipeline.
func (t *Tool) DownloadAudio(ctx context.Context, target, outputTemplate string) error {
	args := []string{
		"--format", "bestaudio/best",
		"--output", outputTemplate,
		"--quiet",
		"--no-warnings",
		"--write-thumbnail",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--embed-thumbnail",
		"--embed-metadata",
		"--downloader", "aria2c",
		"--downloader-args", "aria2c:-x 16 -s 16 -k 1M",
		target,
	}

	_, err := t.runner.Run(ctx, args...)
	return err
}
