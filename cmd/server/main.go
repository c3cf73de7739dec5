/*
Package main is the entry point for the EmoteGuessr server.

It is responsible for loading configuration, initializing the global logging system,
loading the token signing key, wiring up the session registry, room directory
and emote catalog, setting up the HTTP server, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emoteguessr/internal/app/catalog"
	"emoteguessr/internal/app/game"
	"emoteguessr/internal/app/twitch"
	"emoteguessr/internal/configs"
	"emoteguessr/internal/handler"
	"emoteguessr/internal/pkg/keyfile"
	"emoteguessr/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("emote_set_id", cfg.EmoteSetID).
		Dur("round_duration", cfg.RoundDuration).
		Msg("Configuration loaded successfully")

	signingKey, err := keyfile.Load(cfg.KeyFile)
	if err != nil {
		logx.Fatal(err, "Failed to load token signing key")
	}

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize game state
	registry := game.NewRegistry()
	emotes := catalog.NewClient(cfg.EmoteAPIURL, cfg.CatalogCacheTTL)
	directory := game.NewDirectory(registry, emotes, cfg.EmoteSetID, cfg.RoundDuration)
	helix := twitch.NewClient(cfg.TwitchAPIURL, cfg.TwitchClientID)

	// Setup HTTP server and routes
	deps := &handler.AppDeps{
		Directory:  directory,
		Registry:   registry,
		Twitch:     helix,
		Config:     cfg,
		SigningKey: signingKey,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("EmoteGuessr Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
