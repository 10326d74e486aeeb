package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/packlist/packlist/internal/domain"
	"github.com/packlist/packlist/internal/session"
	"github.com/packlist/packlist/internal/validation"
)

// SessionRunner drives one download session to its terminal message.
type SessionRunner interface {
	Run(ctx context.Context, rawURL string, sink session.Sink)
}

// SessionHandler upgrades connections to websockets and hands each one
// to the orchestrator: one request in, a stream of status messages out.
type SessionHandler struct {
	sessions  SessionRunner
	upgrader  websocket.Upgrader
	validator *validator.Validate
	logger    *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions SessionRunner, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			// The browser frontend is served from another origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		validator: validator.New(),
		logger:    logger,
	}
}

// Serve handles GET /ws. It reads exactly one request payload, then
// streams session output until a terminal message. A peer disconnect
// cancels the session context so in-flight fetches stop and cleanup
// still runs.
func (h *SessionHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var req domain.DownloadRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.logger.Warn("failed to read request", "error", err)
		return
	}

	sink := &wsSink{conn: conn}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed", "error", err)
		_ = sink.Send(domain.ErrorMessage{Error: "INVALID REQUEST"})
		return
	}

	if err := validation.ValidateLink(req.URL); err != nil {
		h.logger.Warn("link validation failed", "url", req.URL, "error", err)
		_ = sink.Send(domain.ErrorMessage{Error: "INVALID REQUEST"})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read pump: the client sends nothing after the request, so the
	// next read only ever returns on disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	h.logger.Info("session accepted", "url", req.URL)
	h.sessions.Run(ctx, req.URL, sink)
}

// wsSink serializes writes to one websocket connection. The read pump
// and the orchestrator never write concurrently today, but the lock
// keeps the single-writer rule explicit.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
