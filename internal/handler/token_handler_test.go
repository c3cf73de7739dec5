package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoteguessr/internal/app/catalog"
	"emoteguessr/internal/app/game"
	"emoteguessr/internal/app/twitch"
	"emoteguessr/internal/configs"
	"emoteguessr/internal/pkg/auth/jwt"
)

func testSigningKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

// newTestDeps wires a full handler dependency set around a fake Twitch API.
func newTestDeps(t *testing.T, twitchURL string) *AppDeps {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment:   "development",
		Port:          8080,
		PublicURL:     "http://localhost:8080",
		TwitchAPIURL:  twitchURL,
		EmoteSetID:    "test-set",
		RoundDuration: time.Minute,
	}

	registry := game.NewRegistry()
	emotes := catalog.NewClient("http://127.0.0.1:0", time.Hour)
	directory := game.NewDirectory(registry, emotes, cfg.EmoteSetID, cfg.RoundDuration)

	return &AppDeps{
		Directory:  directory,
		Registry:   registry,
		Twitch:     twitch.NewClient(twitchURL, "test-client-id"),
		Config:     cfg,
		SigningKey: testSigningKey(),
	}
}

func newFakeTwitch(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		require.Equal(t, "test-client-id", r.Header.Get("Client-Id"))

		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"42","login":"streamer","display_name":"Streamer"}]}`)) //nolint:errcheck
	}))
}

func postToken(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTokenExchangeSuccess(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	rec := postToken(t, router, `{"access_token":"good-token"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			JWT string `json:"jwt"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.JWT)

	payload, err := jwt.ParseToken(envelope.Data.JWT, deps.SigningKey)
	require.NoError(t, err)
	assert.Equal(t, "42", payload.TwitchID)
	assert.Equal(t, "streamer", payload.Login)
	assert.Equal(t, "Streamer", payload.DisplayName)
}

func TestTokenExchangeRejectedUpstream(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	rec := postToken(t, router, `{"access_token":"bad-token"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTokenExchangeMissingToken(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	rec := postToken(t, router, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Validation failures ride HTTP 200 with a non-zero business code.
	var envelope struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotZero(t, envelope.Code)
}

func TestTokenExchangeMalformedBody(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	rec := postToken(t, router, `{"access_token":`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotZero(t, envelope.Code)
}

func TestHealthEndpoint(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoomQRUnknownRoom(t *testing.T) {
	fake := newFakeTwitch(t)
	defer fake.Close()

	deps := newTestDeps(t, fake.URL)
	router := Router(deps)

	req := httptest.NewRequest(http.MethodGet, "/rooms/no-such-room/qr", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
