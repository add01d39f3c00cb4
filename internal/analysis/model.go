package analysis

import (
	"farmai-backend/internal/crops"
	"farmai-backend/internal/geo"
	"farmai-backend/internal/openmeteo"
)

// PointRequest is the body of POST /point-info and POST /recommendations.
type PointRequest struct {
	Lat *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
}

// PolygonRequest is the body of POST /analyze. Coordinates are [lng, lat] pairs.
type PolygonRequest struct {
	Coordinates [][]float64 `json:"coordinates" binding:"required"`
	AreaAcres   *float64    `json:"area_acres" binding:"required,gte=0"`
}

// ProfileRequest is the body of POST /elevation-profile. Coordinates are [lng, lat] pairs.
type ProfileRequest struct {
	Coordinates [][]float64 `json:"coordinates" binding:"required,min=1,max=100,dive,len=2"`
}

// PointInfo describes a single map point.
type PointInfo struct {
	Elevation *float64 `json:"elevation"`
	SoilType  string   `json:"soil_type"`
	NDVI      float64  `json:"ndvi"`
	NDVILabel string   `json:"ndvi_label"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
}

// SoilProfile is a soil survey map unit summary.
type SoilProfile struct {
	MuName           string    `json:"mu_name"`
	Taxonomy         string    `json:"taxonomy"`
	Drainage         string    `json:"drainage"`
	PHRange          []float64 `json:"ph_range"`
	OrganicMatterPct float64   `json:"organic_matter_pct"`
}

// Alert is a weather service alert.
type Alert struct {
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// SatelliteScene summarizes a satellite acquisition over the field.
type SatelliteScene struct {
	MeanNDVI     float64 `json:"mean_ndvi"`
	CloudCover   string  `json:"cloud_cover"`
	DateAcquired string  `json:"date_acquired"`
}

// Result is the full field analysis.
type Result struct {
	AnalysisID          string              `json:"analysis_id"`
	Centroid            geo.Point           `json:"centroid"`
	AreaAcres           float64             `json:"area_acres"`
	WeatherForecast     *openmeteo.Forecast `json:"weather_forecast"`
	WeatherHistorical   *openmeteo.Forecast `json:"weather_historical"`
	SoilData            SoilProfile         `json:"soil_data"`
	NWSAlerts           []Alert             `json:"nws_alerts"`
	SentinelData        SatelliteScene      `json:"sentinel_satellite_data"`
	CropMatrix          []crops.Candidate   `json:"crop_matrix"`
	EconomicProjections crops.Projection    `json:"economic_projections"`
}

// ElevationProfile lists elevations in request order; unresolved points are null.
type ElevationProfile struct {
	Elevations []*float64 `json:"elevations"`
}

// Until soil, alert, and imagery providers are wired these are fixed.
const pointSoilType = "Hagerstown silt loam, pH 6.8"

func mockSoil() SoilProfile {
	return SoilProfile{
		MuName:           "Cecil sandy loam",
		Taxonomy:         "Fine, kaolinitic, thermic Typic Kanhapludults",
		Drainage:         "Well drained",
		PHRange:          []float64{5.5, 6.5},
		OrganicMatterPct: 1.2,
	}
}

func mockAlerts() []Alert {
	return []Alert{{
		Event:       "Heat Advisory",
		Severity:    "Moderate",
		Description: "High temperatures expected.",
	}}
}

func mockScene() SatelliteScene {
	return SatelliteScene{
		MeanNDVI:     0.68,
		CloudCover:   "15%",
		DateAcquired: "2023-10-15T14:30:00Z",
	}
}
