// Package swapi is a minimal read-only client for the public Star Wars API.
// The catalog sync only needs the film list, fetched in a single call.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Film is one record of the upstream /films listing. URL is the canonical
// address of the film on the upstream API and serves as the natural key
// when reconciling against local rows.
type Film struct {
	Title        string    `json:"title"`
	EpisodeID    int       `json:"episode_id"`
	OpeningCrawl string    `json:"opening_crawl"`
	Director     string    `json:"director"`
	Producer     string    `json:"producer"`
	ReleaseDate  string    `json:"release_date"` // "2006-01-02"
	Characters   LooseList `json:"characters"`
	Planets      LooseList `json:"planets"`
	Starships    LooseList `json:"starships"`
	Vehicles     LooseList `json:"vehicles"`
	Species      LooseList `json:"species"`
	URL          string    `json:"url"`
}

// LooseList decodes a JSON array of strings but tolerates anything else
// (null, a number, an object) by decoding to an empty list. The upstream
// API has returned malformed reference lists before; a bad list should not
// sink the whole sync run.
type LooseList []string

func (l *LooseList) UnmarshalJSON(b []byte) error {
	var out []string
	if err := json.Unmarshal(b, &out); err != nil || out == nil {
		*l = []string{}
		return nil
	}
	*l = out
	return nil
}

// Client calls the upstream API over plain HTTP with a bounded timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL (e.g.
// "https://swapi.dev/api").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// filmsEnvelope mirrors the upstream list response shape.
type filmsEnvelope struct {
	Results []Film `json:"results"`
}

// Films fetches the full current film list in one call. Any transport,
// status or decode failure is returned as a single error; the caller
// decides whether and when to retry.
func (c *Client) Films(ctx context.Context) ([]Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/films", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch films: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch films: unexpected status %d", resp.StatusCode)
	}
	var env filmsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode films: %w", err)
	}
	return env.Results, nil
}
