// Package openmeteo fetches forecast and historical weather from Open-Meteo.
package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/upstream"
)

const (
	// ForecastFailure is the sentinel message for a failed forecast fetch.
	ForecastFailure = "Failed to fetch forecast"
	// HistoricalFailure is the sentinel message for a failed archive fetch.
	HistoricalFailure = "Failed to fetch historical data"

	dailyVariables  = "temperature_2m_max,temperature_2m_min,precipitation_sum"
	forecastDays    = "16"
	historicalStart = "1993-01-01"
	historicalEnd   = "2023-12-31"
	forecastName    = "open-meteo-forecast"
	historicalName  = "open-meteo-archive"
)

// Client talks to the forecast and archive hosts.
type Client struct {
	up         *upstream.Client
	baseURL    string
	archiveURL string
}

// NewClient constructs a Client. Base URLs are hosts without the /v1 path.
func NewClient(up *upstream.Client, baseURL, archiveURL string) *Client {
	return &Client{
		up:         up,
		baseURL:    strings.TrimRight(baseURL, "/"),
		archiveURL: strings.TrimRight(archiveURL, "/"),
	}
}

// Forecast returns the 16-day daily forecast for a point. It never returns nil;
// failures come back as a sentinel carrying ForecastFailure.
func (c *Client) Forecast(ctx context.Context, lat, lng float64) *Forecast {
	q := pointQuery(lat, lng)
	q.Set("forecast_days", forecastDays)

	body, err := c.up.Do(ctx, upstream.Request{
		Name:     forecastName,
		URL:      c.baseURL + "/v1/forecast?" + q.Encode(),
		CacheKey: cache.Key(forecastName, roundCoord(lat), roundCoord(lng)),
	})
	if err != nil {
		return Failed(ForecastFailure)
	}
	return ParseForecast(body, ForecastFailure)
}

// Historical returns thirty years of daily history for a point.
func (c *Client) Historical(ctx context.Context, lat, lng float64) *Forecast {
	q := pointQuery(lat, lng)
	q.Set("start_date", historicalStart)
	q.Set("end_date", historicalEnd)

	body, err := c.up.Do(ctx, upstream.Request{
		Name:     historicalName,
		URL:      c.archiveURL + "/v1/archive?" + q.Encode(),
		CacheKey: cache.Key(historicalName, roundCoord(lat), roundCoord(lng)),
	})
	if err != nil {
		return Failed(HistoricalFailure)
	}
	return ParseForecast(body, HistoricalFailure)
}

func pointQuery(lat, lng float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("daily", dailyVariables)
	q.Set("timezone", "auto")
	return q
}

func roundCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
