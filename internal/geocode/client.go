// Package geocode resolves free-text US addresses through Nominatim.
package geocode

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/upstream"
	"farmai-backend/internal/shared/util"
)

const (
	upstreamName   = "nominatim"
	minQueryLength = 3
	resultLimit    = "5"
)

// Result is one geocoding match.
type Result struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	State       string  `json:"state"`
	County      string  `json:"county"`
}

type place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		State  string `json:"state"`
		County string `json:"county"`
	} `json:"address"`
}

// Client searches Nominatim.
type Client struct {
	up      *upstream.Client
	baseURL string
}

// NewClient constructs a Client. The upstream client must carry a User-Agent
// per the Nominatim usage policy.
func NewClient(up *upstream.Client, baseURL string) *Client {
	return &Client{up: up, baseURL: strings.TrimRight(baseURL, "/")}
}

// Search returns up to five US matches. Short queries and upstream failures
// yield an empty list.
func (c *Client) Search(ctx context.Context, query string) []Result {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return []Result{}
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", resultLimit)
	q.Set("addressdetails", "1")
	q.Set("countrycodes", "us")

	body, err := c.up.Do(ctx, upstream.Request{
		Name:     upstreamName,
		URL:      c.baseURL + "/search?" + q.Encode(),
		CacheKey: cache.Key(upstreamName, util.QueryDigest(query)),
	})
	if err != nil {
		return []Result{}
	}

	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return []Result{}
	}
	out := make([]Result, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lng, errLng := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		out = append(out, Result{
			DisplayName: p.DisplayName,
			Lat:         lat,
			Lng:         lng,
			State:       p.Address.State,
			County:      p.Address.County,
		})
	}
	return out
}
