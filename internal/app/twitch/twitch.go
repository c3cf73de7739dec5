/*
Package twitch resolves a Twitch OAuth token to the account that owns it.

It is used exactly once per client, during the token exchange that produces
the signed identity claim the websocket handshake trusts.
*/
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User is the subset of a Helix user record the server cares about.
type User struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type usersResponse struct {
	Data []User `json:"data"`
}

// Client queries the Twitch Helix API.
type Client struct {
	apiURL     string
	clientID   string
	httpClient *http.Client
}

// NewClient constructs a Helix client for the given API base URL and application client id.
func NewClient(apiURL, clientID string) *Client {
	return &Client{
		apiURL:     apiURL,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UserForToken returns the Twitch account the bearer token belongs to.
func (c *Client) UserForToken(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/users", nil)
	if err != nil {
		return User{}, fmt.Errorf("cannot build user lookup request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Client-Id", c.clientID)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("user lookup request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("user lookup returned status %d", res.StatusCode)
	}

	var parsed usersResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return User{}, fmt.Errorf("cannot decode user lookup response: %w", err)
	}

	if len(parsed.Data) == 0 {
		return User{}, fmt.Errorf("user lookup returned no accounts")
	}

	return parsed.Data[0], nil
}
