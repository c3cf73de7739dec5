package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TWITCH_CLIENT_ID", "client-id")
	t.Setenv("EMOTE_SET_ID", "set-id")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "secret.key", cfg.KeyFile)
	assert.Equal(t, "https://api.twitch.tv/helix", cfg.TwitchAPIURL)
	assert.Equal(t, "https://7tv.io/v3/gql", cfg.EmoteAPIURL)
	assert.Equal(t, 3*time.Hour, cfg.CatalogCacheTTL)
	assert.Equal(t, time.Minute, cfg.RoundDuration)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("PUBLIC_URL", "https://game.example.com/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("GAME_ROUND_DURATION", "90s")
	t.Setenv("CATALOG_CACHE_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://game.example.com", cfg.PublicURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.RoundDuration)
	assert.Equal(t, 30*time.Minute, cfg.CatalogCacheTTL)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("TWITCH_CLIENT_ID", "")
	t.Setenv("EMOTE_SET_ID", "set-id")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("TWITCH_CLIENT_ID", "client-id")
	t.Setenv("EMOTE_SET_ID", "")

	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("PORT", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	assert.Error(t, err, "privileged ports are rejected")

	t.Setenv("PORT", "8080")
	t.Setenv("GAME_ROUND_DURATION", "-5s")
	_, err = LoadConfig()
	assert.Error(t, err)
}
