// Package analysis composes weather, elevation, and scoring into the field
// analysis endpoints.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"farmai-backend/internal/crops"
	"farmai-backend/internal/geo"
	"farmai-backend/internal/geocode"
	"farmai-backend/internal/ndvi"
	"farmai-backend/internal/openmeteo"
	"farmai-backend/internal/shared/metrics"
	"farmai-backend/internal/shared/telemetry"
)

// WeatherSource fetches forecast and historical weather. Failures come back as sentinels.
type WeatherSource interface {
	Forecast(ctx context.Context, lat, lng float64) *openmeteo.Forecast
	Historical(ctx context.Context, lat, lng float64) *openmeteo.Forecast
}

// ElevationSource resolves ground elevation.
type ElevationSource interface {
	Lookup(ctx context.Context, lat, lng float64) *float64
	Profile(ctx context.Context, points []geo.Point) []*float64
}

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Search(ctx context.Context, query string) []geocode.Result
}

// Service implements the analysis endpoints.
type Service struct {
	Weather   WeatherSource
	Elevation ElevationSource
	Geocoder  Geocoder
	Scorer    *crops.Scorer
	NDVI      *ndvi.Estimator
	// Rand drives the recommendation jitter; nil uses the global generator.
	Rand  crops.RandomSource
	Now   func() time.Time
	NewID func() string
}

// NewService constructs a Service with default scoring and NDVI estimation.
func NewService(weather WeatherSource, elevation ElevationSource, geocoder Geocoder) *Service {
	return &Service{
		Weather:   weather,
		Elevation: elevation,
		Geocoder:  geocoder,
		Scorer:    crops.NewScorer(nil),
		NDVI:      ndvi.NewEstimator(ndvi.DefaultSeed),
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// PointInfo describes a clicked map point.
func (s *Service) PointInfo(ctx context.Context, lat, lng float64) PointInfo {
	v := roundTo(s.NDVI.Estimate(lat, lng, s.now().Month()), 2)
	return PointInfo{
		Elevation: s.Elevation.Lookup(ctx, lat, lng),
		SoilType:  pointSoilType,
		NDVI:      v,
		NDVILabel: ndvi.Label(v),
		Lat:       lat,
		Lng:       lng,
	}
}

// Analyze validates the field polygon, fetches weather for its centroid in
// parallel, and scores crops against the forecast.
func (s *Service) Analyze(ctx context.Context, coords [][]float64, areaAcres float64) (Result, error) {
	start := s.now()

	poly, err := geo.FromCoordinates(coords)
	if err != nil {
		return Result{}, err
	}
	centroid := poly.Centroid()

	var forecast, historical *openmeteo.Forecast
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		forecast = s.Weather.Forecast(gctx, centroid.Lat, centroid.Lng)
		return nil
	})
	g.Go(func() error {
		historical = s.Weather.Historical(gctx, centroid.Lat, centroid.Lng)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	matrix := s.scorer().GenerateMatrix(forecast)
	result := Result{
		AnalysisID:          s.newID(),
		Centroid:            centroid.Round(6),
		AreaAcres:           areaAcres,
		WeatherForecast:     forecast,
		WeatherHistorical:   historical,
		SoilData:            mockSoil(),
		NWSAlerts:           mockAlerts(),
		SentinelData:        mockScene(),
		CropMatrix:          matrix,
		EconomicProjections: crops.CalculateProjection(matrix, areaAcres),
	}

	elapsed := s.now().Sub(start)
	metrics.IncAnalysis()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	telemetry.Info("analysis.complete", map[string]any{
		"analysis_id":      result.AnalysisID,
		"centroid_lat":     result.Centroid.Lat,
		"centroid_lng":     result.Centroid.Lng,
		"area_acres":       areaAcres,
		"forecast_error":   forecast.Err(),
		"historical_error": historical.Err(),
		"top_crop":         topCrop(matrix),
		"duration_ms":      elapsed.Milliseconds(),
	})
	return result, nil
}

// ElevationProfile resolves elevations along [lng, lat] coordinates.
func (s *Service) ElevationProfile(ctx context.Context, coords [][]float64) ElevationProfile {
	points := make([]geo.Point, len(coords))
	for i, c := range coords {
		points[i] = geo.Point{Lat: c[1], Lng: c[0]}
	}
	return ElevationProfile{Elevations: s.Elevation.Profile(ctx, points)}
}

// Geocode searches for an address.
func (s *Service) Geocode(ctx context.Context, query string) []geocode.Result {
	return s.Geocoder.Search(ctx, query)
}

func (s *Service) scorer() *crops.Scorer {
	if s.Scorer == nil {
		return crops.NewScorer(nil)
	}
	return s.Scorer
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func topCrop(matrix []crops.Candidate) string {
	if len(matrix) == 0 {
		return ""
	}
	return matrix[0].Crop
}
