// Package ndvi estimates a vegetation index for a point until a satellite
// source is wired in.
package ndvi

import (
	"math"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	minValue = 0.1
	maxValue = 0.95

	baseValue      = 0.55
	noiseAmplitude = 0.15
	noiseFrequency = 10.0
	seasonalSwing  = 0.15
)

// DefaultSeed keeps estimates stable across restarts.
const DefaultSeed int64 = 20231015

// Estimator produces deterministic NDVI estimates for a given seed.
type Estimator struct {
	noise opensimplex.Noise
}

// NewEstimator builds an Estimator from a noise seed.
func NewEstimator(seed int64) *Estimator {
	return &Estimator{noise: opensimplex.New(seed)}
}

// Estimate returns an NDVI value in [0.1, 0.95] for the point and month.
// Vegetation peaks in June, southern latitudes get a year-round boost, and
// coordinate noise adds local variation.
func (e *Estimator) Estimate(lat, lng float64, month time.Month) float64 {
	// Zero-based month, January = 0.
	m := float64(month - 1)
	seasonal := math.Sin((m-2)*math.Pi/6) * seasonalSwing

	base := baseValue + octaveNoise(e.noise, lat, lng, 2, noiseFrequency, 0.5)*noiseAmplitude
	return clamp(base + seasonal + latitudeBoost(lat))
}

// Label buckets an NDVI value into a human description.
func Label(v float64) string {
	switch {
	case v >= 0.7:
		return "Healthy vegetation"
	case v >= 0.5:
		return "Moderate vegetation"
	case v >= 0.3:
		return "Sparse vegetation"
	default:
		return "Bare/stressed"
	}
}

func latitudeBoost(lat float64) float64 {
	abs := math.Abs(lat)
	switch {
	case abs < 35:
		return 0.1
	case abs < 45:
		return 0
	default:
		return -0.05
	}
}

// octaveNoise layers frequencies and normalizes back to [-1, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func clamp(v float64) float64 {
	return math.Max(minValue, math.Min(maxValue, v))
}
