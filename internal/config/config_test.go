package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:        8080,
		HTTPTimeout:     15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxFetchWorkers: 15,
		PlaylistItemCap: 100,
		FetchTimeout:    10 * time.Minute,
		YTDLPPath:       "yt-dlp",
		PublicDir:       "./public_downloads",
		TempRoot:        "./tmp",
		PublicBaseURL:   "http://localhost:8080",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.HTTPPort = 0 },
			wantErr: true,
		},
		{
			name:    "port above range",
			mutate:  func(c *Config) { c.HTTPPort = 70000 },
			wantErr: true,
		},
		{
			name:    "zero fetch workers",
			mutate:  func(c *Config) { c.MaxFetchWorkers = 0 },
			wantErr: true,
		},
		{
			name:    "negative item cap",
			mutate:  func(c *Config) { c.PlaylistItemCap = -1 },
			wantErr: true,
		},
		{
			name:    "empty yt-dlp path",
			mutate:  func(c *Config) { c.YTDLPPath = "" },
			wantErr: true,
		},
		{
			name:    "empty public dir",
			mutate:  func(c *Config) { c.PublicDir = "" },
			wantErr: true,
		},
		{
			name:    "empty temp root",
			mutate:  func(c *Config) { c.TempRoot = "" },
			wantErr: true,
		},
		{
			name:    "empty public base URL",
			mutate:  func(c *Config) { c.PublicBaseURL = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
