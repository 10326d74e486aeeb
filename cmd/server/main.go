package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	h "github.com/packlist/packlist/internal/api/http"
	"github.com/packlist/packlist/internal/archive"
	cfgpkg "github.com/packlist/packlist/internal/config"
	"github.com/packlist/packlist/internal/fetch"
	"github.com/packlist/packlist/internal/resolve"
	"github.com/packlist/packlist/internal/session"
	"github.com/packlist/packlist/internal/spotify"
	"github.com/packlist/packlist/internal/storage"
	"github.com/packlist/packlist/internal/ytdlp"
)

func main() {

	cfg, err := cfgpkg.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	cfgpkg.SetupLogger(cfg)
	logger := slog.Default()
	logger.Info("configuration loaded successfully")

	metadataClient := spotify.New(context.Background(), cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	tool := ytdlp.New(cfg.YTDLPPath)

	resolver := resolve.New(metadataClient, tool, cfg.PlaylistItemCap, logger)
	fetcher := fetch.NewFetcher(tool, cfg.FetchTimeout, logger)
	scheduler := fetch.NewScheduler(fetcher, cfg.MaxFetchWorkers, logger)
	packager := archive.NewPackager(cfg.PublicDir, logger)

	orchestrator := session.NewOrchestrator(
		resolver,
		scheduler,
		packager,
		cfg.TempRoot,
		cfg.PublicBaseURL,
		logger,
	)

	store := storage.NewArchiveStore(cfg.PublicDir)

	router := h.NewRouter(
		h.NewSessionHandler(orchestrator, logger),
		h.NewArchiveHandler(store, logger),
		cfg.PublicDir,
	)

	// Websocket sessions are long-lived, so only the header read gets a
	// timeout here.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	} else {
		logger.Info("server stopped gracefully")
	}
}
