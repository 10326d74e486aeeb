package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionState is the orchestrator's current phase.
type SessionState string

const (
	StateIdle        SessionState = "idle"
	StateAnalyzing   SessionState = "analyzing"
	StateResolving   SessionState = "resolving"
	StateDownloading SessionState = "downloading"
	StatePackaging   SessionState = "packaging"
	StateReady       SessionState = "ready"
	StateFailed      SessionState = "failed"
)

// Session is the ephemeral per-connection unit of work. It owns TempDir
// exclusively until the archive is packaged or the session fails.
type Session struct {
	ID           string
	TempDir      string
	PlaylistName string
	Tracks       []Track
	CreatedAt    time.Time
}

// NewSessionID returns a time-ordered unique session identifier.
func NewSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return id.String()
}
