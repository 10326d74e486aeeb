package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates the HTTP router: the websocket session endpoint,
// the one-shot retrieval endpoint, static serving of the public
// directory, health check, and Prometheus metrics.
func NewRouter(sessions *SessionHandler, archives *ArchiveHandler, publicDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/ws", sessions.Serve)
	r.Get("/download_once/{filename}", archives.DownloadOnce)

	// Direct access to produced archives; the one-shot endpoint above
	// is the sanctioned retrieval path.
	fileServer := http.StripPrefix("/public_downloads/", http.FileServer(http.Dir(publicDir)))
	r.Handle("/public_downloads/*", fileServer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
