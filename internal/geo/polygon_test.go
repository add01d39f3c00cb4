package geo

import (
	"errors"
	"math"
	"testing"
)

func TestFromCoordinatesTooFewPoints(t *testing.T) {
	_, err := FromCoordinates([][]float64{{0, 0}, {1, 1}})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
}

func TestFromCoordinatesInvalid(t *testing.T) {
	cases := map[string][][]float64{
		"short pair": {{0, 0}, {1}, {1, 1}},
		"long pair":  {{0, 0, 0}, {1, 0}, {1, 1}},
		"collinear":  {{0, 0}, {1, 1}, {2, 2}},
		"repeated":   {{3, 3}, {3, 3}, {3, 3}},
		"nan":        {{0, 0}, {math.NaN(), 0}, {1, 1}},
		"inf":        {{0, 0}, {math.Inf(1), 0}, {1, 1}},
	}
	for name, coords := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromCoordinates(coords); !errors.Is(err, ErrInvalidPolygon) {
				t.Fatalf("expected ErrInvalidPolygon, got %v", err)
			}
		})
	}
}

func TestCentroidSquare(t *testing.T) {
	p, err := FromCoordinates([][]float64{{-80, 35}, {-79, 35}, {-79, 36}, {-80, 36}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := p.Centroid()
	if math.Abs(c.Lat-35.5) > 1e-9 || math.Abs(c.Lng+79.5) > 1e-9 {
		t.Fatalf("unexpected centroid: %+v", c)
	}
}

func TestCentroidClosedRingAndWinding(t *testing.T) {
	open := [][]float64{{0, 0}, {4, 0}, {0, 3}}
	closed := append(append([][]float64{}, open...), []float64{0, 0})
	clockwise := [][]float64{{0, 0}, {0, 3}, {4, 0}}

	var got []Point
	for _, coords := range [][][]float64{open, closed, clockwise} {
		p, err := FromCoordinates(coords)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, p.Centroid())
	}
	for _, c := range got {
		if math.Abs(c.Lng-4.0/3) > 1e-9 || math.Abs(c.Lat-1) > 1e-9 {
			t.Fatalf("unexpected triangle centroid: %+v", c)
		}
	}
}

func TestCentroidDegenerateFallsBackToAverage(t *testing.T) {
	p := Polygon{Vertices: []Point{{Lat: 0, Lng: 0}, {Lat: 2, Lng: 2}}}
	c := p.Centroid()
	if c.Lat != 1 || c.Lng != 1 {
		t.Fatalf("expected vertex average, got %+v", c)
	}
}

func TestPointRound(t *testing.T) {
	got := Point{Lat: 35.12345678, Lng: -79.98765432}.Round(6)
	if got.Lat != 35.123457 || got.Lng != -79.987654 {
		t.Fatalf("unexpected rounding: %+v", got)
	}
}

func TestDistanceMiles(t *testing.T) {
	got := DistanceMiles(0.003, 0.004)
	if math.Abs(got-0.345) > 1e-9 {
		t.Fatalf("expected 0.345, got %v", got)
	}
}

func TestCentroidSmallFieldFarFromOrigin(t *testing.T) {
	p, err := FromCoordinates([][]float64{{-80, 35}, {-79.99, 35}, {-79.99, 35.01}, {-80, 35.01}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := p.Centroid()
	if math.Abs(c.Lat-35.005) > 1e-12 || math.Abs(c.Lng+79.995) > 1e-12 {
		t.Fatalf("unexpected centroid: %+v", c)
	}
}
