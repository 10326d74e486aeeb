package domain

// DownloadRequest is the single payload a client sends after opening
// the websocket.
type DownloadRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// StatusMessage is a plain progress-free status push.
type StatusMessage struct {
	Status string `json:"status"`
}

// ProgressMessage reports fetch completion progress, 0-100.
type ProgressMessage struct {
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

// ReadyMessage is the successful terminal message of a session.
type ReadyMessage struct {
	Status      string `json:"status"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

// ErrorMessage is the failing terminal message. The wire contract keeps
// the error as free text; callers must not branch on its content.
type ErrorMessage struct {
	Error string `json:"error"`
}

// StatusReady is the Status value of the terminal ReadyMessage.
const StatusReady = "READY"
