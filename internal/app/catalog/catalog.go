/*
Package catalog fetches and caches the ordered emote list for a 7TV emote set.

The game core treats it as a lookup function with unspecified latency that may
fail: results are cached for a configurable TTL, failures surface as errors and
the triggering game request is abandoned by the caller.
*/
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"emoteguessr/internal/pkg/logx"
)

// DefaultCacheTTL is how long a fetched emote list stays fresh.
const DefaultCacheTTL = 3 * time.Hour

const emoteSetQuery = `query EmoteSet($id: ObjectID!) {
  emoteSet(id: $id) {
    emotes {
      name
      data {
        host {
          url
          files {
            name
          }
        }
      }
    }
  }
}`

// Emote is one guessable catalog entry: a name to guess and an image URL to show.
type Emote struct {
	Name string
	URL  string
}

// Provider is the lookup interface the game core consumes.
type Provider interface {
	// Emotes returns the ordered emote list for the given emote set id.
	Emotes(ctx context.Context, setID string) ([]Emote, error)
}

// Client fetches emote sets from the 7TV GraphQL API and caches them per set id.
type Client struct {
	apiURL     string
	httpClient *http.Client
	ttl        time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	logger zerolog.Logger
}

type cacheEntry struct {
	emotes    []Emote
	fetchedAt time.Time
}

// NewClient constructs a catalog client for the given API endpoint.
// A non-positive ttl falls back to DefaultCacheTTL.
func NewClient(apiURL string, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		ttl:        ttl,
		cache:      make(map[string]cacheEntry),
		logger:     logx.Logger().With().Str("component", "Catalog").Logger(),
	}
}

// Emotes returns the emote list for setID, fetching it from the API when the
// cached copy is absent or stale. The returned slice is shared; callers must
// not mutate it.
func (c *Client) Emotes(ctx context.Context, setID string) ([]Emote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[setID]; ok && time.Since(entry.fetchedAt) < c.ttl {
		return entry.emotes, nil
	}

	emotes, err := c.fetch(ctx, setID)
	if err != nil {
		return nil, err
	}

	c.cache[setID] = cacheEntry{emotes: emotes, fetchedAt: time.Now()}

	c.logger.Info().
		Str("emote_set_id", setID).
		Int("emote_count", len(emotes)).
		Msg("Emote catalog refreshed.")

	return emotes, nil
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data struct {
		EmoteSet struct {
			Emotes []struct {
				Name string `json:"name"`
				Data struct {
					Host struct {
						URL   string `json:"url"`
						Files []struct {
							Name string `json:"name"`
						} `json:"files"`
					} `json:"host"`
				} `json:"data"`
			} `json:"emotes"`
		} `json:"emoteSet"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) fetch(ctx context.Context, setID string) ([]Emote, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     emoteSetQuery,
		Variables: map[string]any{"id": setID},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot encode emote set query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build emote set request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emote catalog request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emote catalog returned status %d", res.StatusCode)
	}

	var parsed gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("cannot decode emote catalog response: %w", err)
	}

	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("emote catalog query error: %s", parsed.Errors[0].Message)
	}

	raw := parsed.Data.EmoteSet.Emotes
	if len(raw) == 0 {
		return nil, fmt.Errorf("emote set %q is empty or unknown", setID)
	}

	emotes := make([]Emote, 0, len(raw))
	for _, item := range raw {
		names := make([]string, 0, len(item.Data.Host.Files))
		for _, f := range item.Data.Host.Files {
			names = append(names, f.Name)
		}

		emotes = append(emotes, Emote{
			Name: item.Name,
			URL:  pickFileURL(item.Data.Host.URL, names),
		})
	}

	return emotes, nil
}

// pickFileURL selects the image file to show for an emote: the largest (4x)
// rendition, preferring an animated gif when one exists.
func pickFileURL(host string, files []string) string {
	var fourX []string
	for _, name := range files {
		if strings.HasPrefix(name, "4x") {
			fourX = append(fourX, name)
		}
	}

	if len(fourX) == 0 {
		fourX = files
	}

	chosen := ""
	for _, name := range fourX {
		if strings.Contains(name, ".gif") {
			chosen = name
			break
		}
	}
	if chosen == "" && len(fourX) > 0 {
		chosen = fourX[0]
	}

	base := host
	if strings.HasPrefix(base, "//") {
		base = "https:" + base
	}

	if chosen == "" {
		return base
	}

	return base + "/" + chosen
}
