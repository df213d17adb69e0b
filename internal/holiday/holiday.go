// Package holiday fetches a public calendar-holiday feed (ISO date →
// holiday name) used only to decorate due dates. It is a pure convenience:
// every failure collapses to "no holidays" and is never surfaced.
package holiday

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// DefaultFeedURL serves a flat {"YYYY-MM-DD": "name"} JSON object.
const DefaultFeedURL = "https://holidays-jp.github.io/api/v1/date.json"

type Client struct {
	URL string
	hc  *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Client{URL: url, hc: &http.Client{Timeout: 5 * time.Second}}
}

// Fetch returns the holiday map, or an empty map on any failure.
func (c *Client) Fetch(ctx context.Context) map[string]string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return map[string]string{}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return map[string]string{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return map[string]string{}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return map[string]string{}
	}
	var days map[string]string
	if err := json.Unmarshal(raw, &days); err != nil {
		return map[string]string{}
	}
	return days
}
