// Package astro provides time scales and angle math shared by the chart engine.
package astro

import "math"

// Normalize360 maps an angle in degrees into [0, 360).
func Normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// A tiny negative remainder plus 360 can round to exactly 360.
	if a >= 360 {
		a -= 360
	}
	return a
}

// SignedLongitude maps a [0, 360) longitude onto the (-180, 180] range used
// for geographic coordinates.
func SignedLongitude(a float64) float64 {
	if a > 180 {
		return a - 360
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
