package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration settings.
type Config struct {
	Environment string `envconfig:"PL_ENV" default:"development"`

	HTTPPort        int           `envconfig:"PL_HTTP_PORT" default:"8080"`
	HTTPTimeout     time.Duration `envconfig:"PL_HTTP_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"PL_SHUTDOWN_TIMEOUT" default:"30s"`

	SpotifyClientID     string `envconfig:"PL_SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"PL_SPOTIFY_CLIENT_SECRET"`

	MaxFetchWorkers int           `envconfig:"PL_MAX_FETCH_WORKERS" default:"15"`
	PlaylistItemCap int           `envconfig:"PL_PLAYLIST_ITEM_CAP" default:"100"`
	FetchTimeout    time.Duration `envconfig:"PL_FETCH_TIMEOUT" default:"10m"`
	YTDLPPath       string        `envconfig:"PL_YTDLP_PATH" default:"yt-dlp"`

	PublicDir     string `envconfig:"PL_PUBLIC_DIR" default:"./public_downloads"`
	TempRoot      string `envconfig:"PL_TEMP_ROOT" default:"./tmp"`
	PublicBaseURL string `envconfig:"PL_PUBLIC_BASE_URL" default:"http://localhost:8080"`

	LogLevel  string `envconfig:"PL_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PL_LOG_FORMAT" default:"json"`
}

// Validate checks the configuration for invalid or missing values.
// Returns an error describing the first invalid setting found.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.MaxFetchWorkers <= 0 {
		return fmt.Errorf("max fetch workers must be positive: %d", c.MaxFetchWorkers)
	}

	if c.PlaylistItemCap <= 0 {
		return fmt.Errorf("playlist item cap must be positive: %d", c.PlaylistItemCap)
	}

	if c.YTDLPPath == "" {
		return fmt.Errorf("yt-dlp path cannot be empty")
	}

	if c.PublicDir == "" {
		return fmt.Errorf("public directory cannot be empty")
	}
	if c.TempRoot == "" {
		return fmt.Errorf("temp root cannot be empty")
	}
	if c.PublicBaseURL == "" {
		return fmt.Errorf("public base URL cannot be empty")
	}

	return nil
}
