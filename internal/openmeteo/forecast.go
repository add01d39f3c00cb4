package openmeteo

import (
	"encoding/json"
)

// DailySeries holds the daily variables requested from Open-Meteo. Missing days decode as nil.
type DailySeries struct {
	Time             []string   `json:"time"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

// Forecast is an upstream weather payload or a failure sentinel.
// It marshals back to the upstream JSON unchanged, or to {"error": "..."}.
type Forecast struct {
	raw   json.RawMessage
	daily *DailySeries
	err   string
}

// ParseForecast wraps an upstream body. Bodies that are not JSON objects become sentinels.
// A daily block of an unexpected shape leaves the payload intact but yields no series.
func ParseForecast(body []byte, failure string) *Forecast {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return Failed(failure)
	}
	f := &Forecast{raw: append(json.RawMessage(nil), body...)}
	if rawDaily, ok := envelope["daily"]; ok {
		var daily DailySeries
		if err := json.Unmarshal(rawDaily, &daily); err == nil {
			f.daily = &daily
		}
	}
	return f
}

// Failed returns a sentinel forecast carrying message.
func Failed(message string) *Forecast {
	return &Forecast{err: message}
}

// Err returns the sentinel message, or "" for a successful payload.
func (f *Forecast) Err() string {
	if f == nil {
		return ""
	}
	return f.err
}

// Daily returns the decoded daily block, or nil when absent or malformed.
func (f *Forecast) Daily() *DailySeries {
	if f == nil {
		return nil
	}
	return f.daily
}

// DailyMaxTemperatures returns the daily maximum temperature series, or nil when unusable.
func (f *Forecast) DailyMaxTemperatures() []*float64 {
	daily := f.Daily()
	if daily == nil {
		return nil
	}
	return daily.TemperatureMax
}

// Raw returns the upstream body for a successful payload.
func (f *Forecast) Raw() json.RawMessage {
	if f == nil {
		return nil
	}
	return f.raw
}

// MarshalJSON implements json.Marshaler.
func (f *Forecast) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	if f.err != "" || len(f.raw) == 0 {
		msg := f.err
		if msg == "" {
			msg = "no data"
		}
		return json.Marshal(map[string]string{"error": msg})
	}
	return f.raw, nil
}
