// Package geo provides great-circle distance and coordinate helpers.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// Coordinates is a point on the Earth's surface in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"` // north positive
	Lon float64 `json:"lon"` // east positive
}

// String formats the point as "12.3456°N, 98.7654°W".
func (c Coordinates) String() string {
	ns, ew := "N", "E"
	lat, lon := c.Lat, c.Lon
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, ns, lon, ew)
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b Coordinates) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(a.Lat), rad(b.Lat)
	Δφ := rad(b.Lat - a.Lat)
	Δλ := rad(b.Lon - a.Lon)

	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)

	// Clamp to avoid NaN from rounding near antipodes
	if h > 1 {
		h = 1
	}

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// MinDistanceKm returns the smallest distance from p to any point in path,
// or +Inf for an empty path.
func MinDistanceKm(p Coordinates, path []Coordinates) float64 {
	best := math.Inf(1)
	for _, q := range path {
		if d := DistanceKm(p, q); d < best {
			best = d
		}
	}
	return best
}

// ValidLat reports whether lat is a finite latitude in [-90, 90].
func ValidLat(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLon reports whether lon is a finite longitude in [-180, 180].
func ValidLon(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}
