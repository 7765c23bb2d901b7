package ephem

import "github.com/litescript/ls-astromap/internal/astro"

// elements are the mean-motion terms of one body: longitude at J2000.0 in
// degrees, and daily motion in degrees per day.
type elements struct {
	base float64
	rate float64
}

// linearElements is indexed by Body.
var linearElements = [numBodies]elements{
	Sun:     {base: 280.460, rate: 0.9856474},
	Moon:    {base: 218.316, rate: 13.176396},
	Mercury: {base: 252.25, rate: 4.092339},
	Venus:   {base: 181.98, rate: 1.602136},
	Mars:    {base: 355.43, rate: 0.524033},
	Jupiter: {base: 34.35, rate: 0.083056},
	Saturn:  {base: 50.07, rate: 0.033526},
}

// LinearProvider computes mean longitudes as base + rate*(jd - J2000).
// It ignores orbital eccentricity and perturbations, so results can be off
// by several degrees for the Moon and planets.
type LinearProvider struct{}

// NewLinearProvider creates the default mean-motion provider.
func NewLinearProvider() *LinearProvider {
	return &LinearProvider{}
}

// Name implements Provider.
func (p *LinearProvider) Name() string {
	return "linear"
}

// Longitude implements Provider.
func (p *LinearProvider) Longitude(body Body, jd float64) float64 {
	el := linearElements[body]
	return astro.Normalize360(el.base + el.rate*astro.DaysSinceJ2000(jd))
}
