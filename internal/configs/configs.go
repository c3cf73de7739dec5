/*
Package configs is responsible for loading and parsing the application's configuration settings.

Server parameters are read from operating system environment variables: the
running environment, port, CORS allowed origins, the signing key file, the
upstream identity provider, and the emote catalog settings.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// PublicURL is the externally reachable base URL, used when rendering
	// room join links (e.g. for QR codes).
	PublicURL string

	// Security Settings
	AllowedOrigins []string
	KeyFile        string

	// Identity Provider Settings
	TwitchClientID string
	TwitchAPIURL   string

	// Emote Catalog Settings
	EmoteAPIURL     string
	EmoteSetID      string
	CatalogCacheTTL time.Duration

	// Game Settings
	RoundDuration time.Duration
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values where sensible and performs necessary type
// conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// PublicURL
	cfg.PublicURL = os.Getenv("PUBLIC_URL")
	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// KeyFile
	cfg.KeyFile = os.Getenv("KEY_FILE")
	if cfg.KeyFile == "" {
		cfg.KeyFile = "secret.key"
	}

	// --- Identity Provider Settings ---
	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	if cfg.TwitchClientID == "" {
		return nil, fmt.Errorf("TWITCH_CLIENT_ID environment variable is required for the token exchange")
	}

	cfg.TwitchAPIURL = os.Getenv("TWITCH_API_URL")
	if cfg.TwitchAPIURL == "" {
		cfg.TwitchAPIURL = "https://api.twitch.tv/helix"
	}

	// --- Emote Catalog Settings ---
	cfg.EmoteAPIURL = os.Getenv("EMOTE_API_URL")
	if cfg.EmoteAPIURL == "" {
		cfg.EmoteAPIURL = "https://7tv.io/v3/gql"
	}

	cfg.EmoteSetID = os.Getenv("EMOTE_SET_ID")
	if cfg.EmoteSetID == "" {
		return nil, fmt.Errorf("EMOTE_SET_ID environment variable is required to select the guessable emote catalog")
	}

	ttlStr := os.Getenv("CATALOG_CACHE_TTL")
	if ttlStr == "" {
		ttlStr = "3h"
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL environment variable: %q", ttlStr)
	}
	cfg.CatalogCacheTTL = ttl

	// --- Game Settings ---
	durStr := os.Getenv("GAME_ROUND_DURATION")
	if durStr == "" {
		durStr = "60s"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil || dur <= 0 {
		return nil, fmt.Errorf("invalid GAME_ROUND_DURATION environment variable: %q", durStr)
	}
	cfg.RoundDuration = dur

	return cfg, nil
}
