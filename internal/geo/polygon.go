// Package geo validates field polygons and computes their centroid.
package geo

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned for polygons with fewer than three vertices.
	ErrTooFewPoints = errors.New("polygon must have at least 3 points")
	// ErrInvalidPolygon is returned for malformed or zero-area coordinates.
	ErrInvalidPolygon = errors.New("invalid polygon coordinates")
)

const areaEpsilon = 1e-18

// Point is a WGS84 position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is a ring of vertices in order. A closing vertex equal to the first is allowed.
type Polygon struct {
	Vertices []Point
}

// FromCoordinates builds a polygon from GeoJSON-ordered [lng, lat] pairs.
func FromCoordinates(coords [][]float64) (Polygon, error) {
	if len(coords) < 3 {
		return Polygon{}, ErrTooFewPoints
	}
	pts := make([]Point, 0, len(coords))
	for i, pair := range coords {
		if len(pair) != 2 {
			return Polygon{}, fmt.Errorf("%w: vertex %d has %d values", ErrInvalidPolygon, i, len(pair))
		}
		lng, lat := pair[0], pair[1]
		if !finite(lng) || !finite(lat) {
			return Polygon{}, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidPolygon, i)
		}
		pts = append(pts, Point{Lat: lat, Lng: lng})
	}
	p := Polygon{Vertices: pts}
	if math.Abs(p.SignedArea()) < areaEpsilon {
		return Polygon{}, fmt.Errorf("%w: zero area", ErrInvalidPolygon)
	}
	return p, nil
}

// SignedArea returns the shoelace area in square degrees, positive for
// counterclockwise winding in (lng, lat) space.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	o := p.Vertices[0]
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i].sub(o), p.Vertices[(i+1)%n].sub(o)
		area += a.Lng*b.Lat - b.Lng*a.Lat
	}
	return area / 2
}

// Centroid returns the area-weighted centroid. Degenerate rings fall back to
// the vertex average.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < areaEpsilon {
		var sum Point
		for _, v := range p.Vertices {
			sum.Lat += v.Lat
			sum.Lng += v.Lng
		}
		return Point{Lat: sum.Lat / float64(n), Lng: sum.Lng / float64(n)}
	}
	// Accumulate relative to the first vertex to limit cancellation.
	o := p.Vertices[0]
	var cx, cy float64
	for i := 0; i < n; i++ {
		v, w := p.Vertices[i].sub(o), p.Vertices[(i+1)%n].sub(o)
		cross := v.Lng*w.Lat - w.Lng*v.Lat
		cx += (v.Lng + w.Lng) * cross
		cy += (v.Lat + w.Lat) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point{Lat: o.Lat + cy*f, Lng: o.Lng + cx*f}
}

// Round returns the point with both coordinates rounded to the given decimals.
func (pt Point) Round(decimals int) Point {
	scale := math.Pow(10, float64(decimals))
	return Point{
		Lat: math.Round(pt.Lat*scale) / scale,
		Lng: math.Round(pt.Lng*scale) / scale,
	}
}

// DistanceMiles approximates the distance between two points at 69 miles per degree.
func DistanceMiles(dLat, dLng float64) float64 {
	return math.Hypot(dLat, dLng) * 69
}

func (pt Point) sub(o Point) Point {
	return Point{Lat: pt.Lat - o.Lat, Lng: pt.Lng - o.Lng}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
