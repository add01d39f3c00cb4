package analysis

import (
	"context"
	"sync"
	"time"

	"farmai-backend/internal/geo"
	"farmai-backend/internal/geocode"
	"farmai-backend/internal/openmeteo"
)

type fakeWeather struct {
	mu         sync.Mutex
	points     [][2]float64
	forecast   *openmeteo.Forecast
	historical *openmeteo.Forecast
	delay      time.Duration
}

func (f *fakeWeather) record(lat, lng float64) {
	f.mu.Lock()
	f.points = append(f.points, [2]float64{lat, lng})
	f.mu.Unlock()
}

func (f *fakeWeather) Forecast(ctx context.Context, lat, lng float64) *openmeteo.Forecast {
	f.record(lat, lng)
	time.Sleep(f.delay)
	return f.forecast
}

func (f *fakeWeather) Historical(ctx context.Context, lat, lng float64) *openmeteo.Forecast {
	f.record(lat, lng)
	time.Sleep(f.delay)
	return f.historical
}

type fakeElevation struct {
	value *float64
}

func (f fakeElevation) Lookup(ctx context.Context, lat, lng float64) *float64 {
	return f.value
}

func (f fakeElevation) Profile(ctx context.Context, points []geo.Point) []*float64 {
	out := make([]*float64, len(points))
	for i, p := range points {
		v := p.Lat * 10
		out[i] = &v
	}
	return out
}

type fakeGeocoder struct {
	query string
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) []geocode.Result {
	f.query = query
	if len(query) < 3 {
		return []geocode.Result{}
	}
	return []geocode.Result{{DisplayName: "Frederick, Maryland", Lat: 39.41, Lng: -77.41, State: "Maryland"}}
}

// fixedSource always returns one end of the requested interval.
type fixedSource struct {
	high bool
}

func (f fixedSource) Uniform(lo, hi float64) float64 {
	if f.high {
		return hi
	}
	return lo
}

// midSource returns interval midpoints.
type midSource struct{}

func (midSource) Uniform(lo, hi float64) float64 {
	return (lo + hi) / 2
}

func hotForecast() *openmeteo.Forecast {
	return openmeteo.ParseForecast([]byte(`{"daily":{"time":["2024-07-01"],"temperature_2m_max":[31.5]}}`), openmeteo.ForecastFailure)
}

func newTestService(weather *fakeWeather) *Service {
	elev := 120.0
	svc := NewService(weather, fakeElevation{value: &elev}, &fakeGeocoder{})
	svc.Now = func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) }
	svc.NewID = func() string { return "analysis-1" }
	return svc
}
