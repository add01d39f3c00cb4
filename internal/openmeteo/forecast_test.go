package openmeteo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForecastKeepsRawPayload(t *testing.T) {
	body := []byte(`{"latitude":40.0,"daily":{"time":["2024-06-01","2024-06-02"],"temperature_2m_max":[24.5,null]}}`)

	f := ParseForecast(body, ForecastFailure)
	require.Empty(t, f.Err())
	require.NotNil(t, f.Daily())

	temps := f.DailyMaxTemperatures()
	require.Len(t, temps, 2)
	assert.InDelta(t, 24.5, *temps[0], 1e-9)
	assert.Nil(t, temps[1])

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(out))
}

func TestParseForecastMalformedDaily(t *testing.T) {
	f := ParseForecast([]byte(`{"daily":"nope"}`), ForecastFailure)
	assert.Empty(t, f.Err())
	assert.Nil(t, f.Daily())
	assert.Nil(t, f.DailyMaxTemperatures())
}

func TestParseForecastNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `null`, `"text"`, `{`} {
		f := ParseForecast([]byte(body), HistoricalFailure)
		assert.Equal(t, HistoricalFailure, f.Err(), body)
	}
}

func TestFailedMarshalsSentinel(t *testing.T) {
	out, err := json.Marshal(Failed(ForecastFailure))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Failed to fetch forecast"}`, string(out))
}

func TestNilForecastIsSafe(t *testing.T) {
	var f *Forecast
	assert.Empty(t, f.Err())
	assert.Nil(t, f.Daily())
	assert.Nil(t, f.DailyMaxTemperatures())
	assert.Nil(t, f.Raw())
}
