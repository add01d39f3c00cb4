package crops

import "strconv"

// Scenario keys.
const (
	ScenarioMaxYield       = "max_yield"
	ScenarioLowMaintenance = "low_maintenance"
	ScenarioPestResistant  = "pest_resistant"
)

// Scenario is one what-if revenue projection.
type Scenario struct {
	Description      string  `json:"description"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
}

// Projection maps scenario keys to scenarios.
type Projection map[string]Scenario

var scenarios = []struct {
	key         string
	multiplier  float64
	description string
}{
	{ScenarioMaxYield, 1.2, "Intensive farming maximizing output."},
	{ScenarioLowMaintenance, 0.7, "Minimal intervention, lower cost."},
	{ScenarioPestResistant, 0.9, "Focus on robust varieties, moderate output."},
}

// CalculateProjection derives the three scenarios from the top-ranked crop's
// revenue per acre times areaAcres. An empty matrix yields an empty projection.
func CalculateProjection(matrix []Candidate, areaAcres float64) Projection {
	out := Projection{}
	if len(matrix) == 0 {
		return out
	}
	base := float64(matrix[0].RevenuePerAcre) * areaAcres
	for _, sc := range scenarios {
		out[sc.key] = Scenario{
			Description:      sc.description,
			EstimatedRevenue: round2(base * sc.multiplier),
		}
	}
	return out
}

// round2 rounds the exact binary value to cents, ties to even.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
