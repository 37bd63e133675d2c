package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/alorle/iptv-player/config"
	"github.com/alorle/iptv-player/internal/adapter/driver"
	"github.com/alorle/iptv-player/internal/application"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the player and its HTTP interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(os.Stdout, cfg.LogLevel)

	logger.Info("starting iptv-player",
		"address", cfg.HTTP.Address,
		"port", cfg.HTTP.Port,
		"store_driver", cfg.Store.Driver,
		"channel_encoding", cfg.Store.Encoding,
		"player_command", cfg.Player.Command,
		"log_level", cfg.LogLevel,
	)
	if cfg.LogLevel == "DEBUG" {
		cfg.Print(os.Stderr)
	}

	prefs, closeStore, err := openPreferenceStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Create driven adapters
	codec := newChannelCodec(cfg)
	player := newPlayer(cfg, logger)
	view := driver.NewChannelListView()

	// Create application services
	store := application.NewChannelStore(prefs, codec, logger)
	controller := application.NewChannelListController(store, player, view, logger)
	playlistService := application.NewPlaylistService(view)
	healthService := application.NewHealthService(prefs)

	// Create HTTP handlers
	channelHandler := driver.NewChannelHTTPHandler(controller, view)
	playlistHandler := driver.NewPlaylistHTTPHandler(playlistService)
	healthHandler := driver.NewHealthHTTPHandler(healthService)

	if err := channelHandler.Start(ctx); err != nil {
		// Playback failures leave a loaded list behind; read failures do not.
		if store.Len() == 0 {
			return fmt.Errorf("failed to start: %w", err)
		}
		logger.Error("startup playback failed", "error", err)
	}

	// Register API routes
	apiMux := http.NewServeMux()
	apiMux.Handle("/channels", channelHandler)
	apiMux.Handle("/channels/", channelHandler)
	apiMux.Handle("/health", healthHandler)

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", http.StripPrefix("/api", apiMux))
	rootMux.Handle("/playlist.m3u", playlistHandler)
	rootMux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      rootMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case <-sigChan:
		logger.Info("shutdown signal received, shutting down gracefully")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := channelHandler.Stop(shutdownCtx); err != nil {
		logger.Error("stop failed", "error", err)
	}

	logger.Info("server stopped")
	return runErr
}
