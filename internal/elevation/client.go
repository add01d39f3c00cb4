// Package elevation queries the Open-Elevation lookup API.
package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"farmai-backend/internal/geo"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/upstream"
)

const upstreamName = "open-elevation"

type lookupResponse struct {
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client resolves ground elevation in meters.
type Client struct {
	up      *upstream.Client
	baseURL string
}

// NewClient constructs a Client against the Open-Elevation host.
func NewClient(up *upstream.Client, baseURL string) *Client {
	return &Client{up: up, baseURL: strings.TrimRight(baseURL, "/")}
}

// Lookup returns the elevation at a point, or nil when the upstream fails or
// reports no result.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) *float64 {
	loc := fmt.Sprintf("%s,%s", strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lng, 'f', -1, 64))
	body, err := c.up.Do(ctx, upstream.Request{
		Name:     upstreamName,
		URL:      c.baseURL + "/api/v1/lookup?locations=" + loc,
		CacheKey: cache.Key(upstreamName, strconv.FormatFloat(lat, 'f', 4, 64), strconv.FormatFloat(lng, 'f', 4, 64)),
	})
	if err != nil {
		return nil
	}
	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Results) == 0 {
		return nil
	}
	return resp.Results[0].Elevation
}

// Profile returns one elevation per point in order. Points the upstream could
// not resolve are nil; a failed call yields all nils.
func (c *Client) Profile(ctx context.Context, points []geo.Point) []*float64 {
	out := make([]*float64, len(points))
	if len(points) == 0 {
		return out
	}
	locs := make([]location, len(points))
	for i, p := range points {
		locs[i] = location{Latitude: p.Lat, Longitude: p.Lng}
	}
	body, err := c.up.Do(ctx, upstream.Request{
		Name:   upstreamName,
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/v1/lookup",
		Body:   map[string]any{"locations": locs},
	})
	if err != nil {
		return out
	}
	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return out
	}
	for i := range out {
		if i < len(resp.Results) {
			out[i] = resp.Results[i].Elevation
		}
	}
	return out
}
