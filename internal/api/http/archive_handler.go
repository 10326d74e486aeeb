package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"log/slog"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/packlist/packlist/internal/errors"
	"github.com/packlist/packlist/internal/metrics"
	"github.com/packlist/packlist/internal/storage"
)

// ArchiveHandler serves produced archives with a read-then-delete
// consumption contract.
type ArchiveHandler struct {
	store  *storage.ArchiveStore
	logger *slog.Logger
}

// NewArchiveHandler creates an ArchiveHandler over the public store.
func NewArchiveHandler(store *storage.ArchiveStore, logger *slog.Logger) *ArchiveHandler {
	return &ArchiveHandler{store: store, logger: logger}
}

// DownloadOnce handles GET /download_once/{filename}: the first request
// returns the archive bytes and deletes the file, any repeat request
// gets a not-found. A concurrent re-read racing the delete is a known
// accepted edge case.
func (h *ArchiveHandler) DownloadOnce(w http.ResponseWriter, r *http.Request) {
	// Base strips any path traversal the client smuggled in.
	name := filepath.Base(chi.URLParam(r, "filename"))

	f, info, err := h.store.Open(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrArchiveNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Error("failed to open archive", "filename", name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), f)
	f.Close()

	if err := h.store.Remove(name); err != nil {
		h.logger.Error("failed to remove served archive", "filename", name, "error", err)
		return
	}

	metrics.ArchivesServed.Inc()
	h.logger.Info("archive served and removed", "filename", name)
}
