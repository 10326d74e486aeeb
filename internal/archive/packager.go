// Package archive packages a session's temporary directory into a
// single zip in the public-serving directory.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/metrics"
)

// Packager produces one archive per session and disposes of the
// session's temporary directory.
type Packager struct {
	publicDir string
	logger    *slog.Logger
}

// NewPackager creates a Packager writing into publicDir.
func NewPackager(publicDir string, logger *slog.Logger) *Packager {
	return &Packager{publicDir: publicDir, logger: logger}
}

// Package zips srcDir into {baseName}.zip under the public directory
// and removes srcDir. Returns the archive filename. On failure the
// partial archive is removed and srcDir is left for the caller's
// cleanup path.
func (p *Packager) Package(srcDir, baseName string) (string, error) {
	filename := baseName + ".zip"
	dstPath := filepath.Join(p.publicDir, filename)

	if err := zipDir(srcDir, dstPath); err != nil {
		os.Remove(dstPath)
		return "", &apperrors.PackagingError{Err: err}
	}

	if info, err := os.Stat(dstPath); err == nil {
		metrics.ArchiveBytes.Add(float64(info.Size()))
	}

	if err := os.RemoveAll(srcDir); err != nil {
		p.logger.Warn("failed to remove temp directory", "path", srcDir, "error", err)
	}

	p.logger.Info("archive packaged", "filename", filename)
	return filename, nil
}

func zipDir(srcDir, dstPath string) error {
	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		return walkErr
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
