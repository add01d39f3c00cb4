package crops

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCalculateProjectionTopCrop(t *testing.T) {
	matrix := []Candidate{
		{Crop: "Basil", SuitabilityScore: 92, RevenuePerAcre: 10000},
		{Crop: "Tomatoes", SuitabilityScore: 88, RevenuePerAcre: 99999},
	}
	got := CalculateProjection(matrix, 10)
	want := Projection{
		ScenarioMaxYield:       {Description: "Intensive farming maximizing output.", EstimatedRevenue: 120000},
		ScenarioLowMaintenance: {Description: "Minimal intervention, lower cost.", EstimatedRevenue: 70000},
		ScenarioPestResistant:  {Description: "Focus on robust varieties, moderate output.", EstimatedRevenue: 90000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateProjectionRoundsToCents(t *testing.T) {
	matrix := []Candidate{{Crop: "Corn", RevenuePerAcre: 8123}}
	got := CalculateProjection(matrix, 1.2345)

	assert.Equal(t, 12033.41, got[ScenarioMaxYield].EstimatedRevenue)
	assert.Equal(t, 7019.49, got[ScenarioLowMaintenance].EstimatedRevenue)
	assert.Equal(t, 9025.06, got[ScenarioPestResistant].EstimatedRevenue)
}

func TestCalculateProjectionRoundsTiesToEven(t *testing.T) {
	got := CalculateProjection([]Candidate{{Crop: "Tomatoes", RevenuePerAcre: 15000}}, 0.00125)
	assert.Equal(t, 22.5, got[ScenarioMaxYield].EstimatedRevenue)
	assert.Equal(t, 13.12, got[ScenarioLowMaintenance].EstimatedRevenue)
	assert.Equal(t, 16.88, got[ScenarioPestResistant].EstimatedRevenue)

	got = CalculateProjection([]Candidate{{Crop: "Basil", RevenuePerAcre: 1}}, 0.10416666666666667)
	assert.Equal(t, 0.12, got[ScenarioMaxYield].EstimatedRevenue)
}

func TestCalculateProjectionZeroArea(t *testing.T) {
	got := CalculateProjection([]Candidate{{Crop: "Basil", RevenuePerAcre: 25000}}, 0)
	assert.Len(t, got, 3)
	for key, sc := range got {
		assert.Zero(t, sc.EstimatedRevenue, key)
	}
}

func TestCalculateProjectionEmptyMatrix(t *testing.T) {
	for _, area := range []float64{0, 1, 250.5} {
		got := CalculateProjection(nil, area)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}
