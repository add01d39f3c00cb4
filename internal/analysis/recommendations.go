package analysis

import (
	"math"

	"farmai-backend/internal/crops"
	"farmai-backend/internal/geo"
)

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature with a polygon geometry.
type Feature struct {
	Type       string           `json:"type"`
	Geometry   Geometry         `json:"geometry"`
	Properties ParcelProperties `json:"properties"`
}

// Geometry is a GeoJSON polygon: rings of [lng, lat] positions.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// ParcelProperties describes a recommended parcel.
type ParcelProperties struct {
	Name           string  `json:"name"`
	ProjectedYield int     `json:"projected_yield"`
	SoilMatchScore int     `json:"soil_match_score"`
	Acreage        float64 `json:"acreage"`
	DistanceMiles  float64 `json:"distance_miles"`
}

type parcelSeed struct {
	name       string
	dLat, dLng float64
}

var parcelSeeds = []parcelSeed{
	{name: "Riverside Agricultural Plot", dLat: 0.008, dLng: 0.005},
	{name: "Hilltop Farmstead", dLat: -0.006, dLng: 0.009},
	{name: "Valley View Parcel", dLat: 0.012, dLng: -0.004},
	{name: "Sunrise Meadow Tract", dLat: -0.010, dLng: -0.007},
}

const (
	jitter       = 0.001
	baseSpread   = 0.002
	extraSpread  = 0.001
	parcelAspect = 0.7
)

// Recommendations returns nearby high-yield parcels around a point.
func (s *Service) Recommendations(lat, lng float64) FeatureCollection {
	src := s.Rand
	if src == nil {
		src = crops.GlobalRand{}
	}

	features := make([]Feature, 0, len(parcelSeeds))
	for _, p := range parcelSeeds {
		pLat := lat + p.dLat + src.Uniform(-jitter, jitter)
		pLng := lng + p.dLng + src.Uniform(-jitter, jitter)
		yield := randInt(src, 82, 98)
		soilMatch := randInt(src, 78, 96)
		acreage := roundTo(src.Uniform(5, 45), 1)
		spread := baseSpread + src.Uniform(0, extraSpread)

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Polygon",
				Coordinates: [][][2]float64{rectangle(pLat, pLng, spread)},
			},
			Properties: ParcelProperties{
				Name:           p.name,
				ProjectedYield: yield,
				SoilMatchScore: soilMatch,
				Acreage:        acreage,
				DistanceMiles:  roundTo(geo.DistanceMiles(p.dLat, p.dLng), 1),
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// rectangle returns a closed ring centred on the point, wider than tall.
func rectangle(lat, lng, spread float64) [][2]float64 {
	h := spread * parcelAspect
	return [][2]float64{
		{lng - spread, lat - h},
		{lng + spread, lat - h},
		{lng + spread, lat + h},
		{lng - spread, lat + h},
		{lng - spread, lat - h},
	}
}

// randInt draws an integer in [lo, hi].
func randInt(src crops.RandomSource, lo, hi int) int {
	v := lo + int(math.Floor(src.Uniform(0, float64(hi-lo+1))))
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
