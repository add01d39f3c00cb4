// Package crops ranks candidate crops for a field and projects revenue scenarios.
package crops

import (
	"math/rand/v2"
	"sort"

	"farmai-backend/internal/openmeteo"
)

// HeatThreshold is the daily maximum temperature above which the climate boost applies.
const HeatThreshold = 25.0

// HeatFactor multiplies every crop's revenue when the forecast crosses HeatThreshold.
const HeatFactor = 1.1

// Candidate is one ranked crop.
type Candidate struct {
	Crop             string `json:"crop"`
	SuitabilityScore int    `json:"suitability_score"`
	RevenuePerAcre   int    `json:"estimated_yield_revenue_per_acre"`
}

type baseCrop struct {
	name    string
	score   float64
	revenue float64
}

// Order matters: equal scores keep this order after ranking.
var baseTable = [...]baseCrop{
	{name: "Tomatoes", score: 85, revenue: 15000},
	{name: "Corn", score: 75, revenue: 8000},
	{name: "Peppers", score: 80, revenue: 18000},
	{name: "Basil", score: 90, revenue: 25000},
	{name: "Sunflowers", score: 70, revenue: 5000},
}

// CropNames returns the fixed crop names in table order.
func CropNames() []string {
	names := make([]string, len(baseTable))
	for i, c := range baseTable {
		names[i] = c.name
	}
	return names
}

// RandomSource draws uniform values in [lo, hi].
type RandomSource interface {
	Uniform(lo, hi float64) float64
}

// GlobalRand draws from the process-wide generator.
type GlobalRand struct{}

// Uniform implements RandomSource.
func (GlobalRand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*rand.Float64()
}

// Scorer builds crop matrices. The zero value draws from the global generator.
type Scorer struct {
	Rand RandomSource
}

// NewScorer returns a Scorer using src, or the global generator when src is nil.
func NewScorer(src RandomSource) *Scorer {
	return &Scorer{Rand: src}
}

// GenerateMatrix scores the fixed crops against the forecast and ranks them by
// suitability, highest first. A nil or failed forecast is treated as no data.
func (s *Scorer) GenerateMatrix(forecast *openmeteo.Forecast) []Candidate {
	src := s.random()
	factor := ClimateFactor(forecast)

	out := make([]Candidate, 0, len(baseTable))
	for _, c := range baseTable {
		delta := src.Uniform(-5, 5)
		mult := src.Uniform(0.95, 1.05)

		out = append(out, Candidate{
			Crop:             c.name,
			SuitabilityScore: clampScore(int(c.score + delta)),
			RevenuePerAcre:   int(c.revenue * mult * factor),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuitabilityScore > out[j].SuitabilityScore
	})
	return out
}

// GenerateMatrix scores with the global generator.
func GenerateMatrix(forecast *openmeteo.Forecast) []Candidate {
	var s Scorer
	return s.GenerateMatrix(forecast)
}

// ClimateFactor returns HeatFactor when any reported daily maximum exceeds
// HeatThreshold, and 1.0 otherwise.
func ClimateFactor(forecast *openmeteo.Forecast) float64 {
	if forecast.Err() != "" {
		return 1.0
	}
	for _, v := range forecast.DailyMaxTemperatures() {
		if v != nil && *v > HeatThreshold {
			return HeatFactor
		}
	}
	return 1.0
}

func (s *Scorer) random() RandomSource {
	if s == nil || s.Rand == nil {
		return GlobalRand{}
	}
	return s.Rand
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
