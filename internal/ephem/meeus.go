package ephem

import (
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/litescript/ls-astromap/internal/astro"
)

// MeeusProvider takes the Sun and Moon from the series in Meeus,
// "Astronomical Algorithms". The planets need VSOP87 data files, which are
// not shipped, so they fall back to the linear model.
type MeeusProvider struct {
	planets *LinearProvider
}

// NewMeeusProvider creates a provider backed by the meeus library.
func NewMeeusProvider() *MeeusProvider {
	return &MeeusProvider{planets: NewLinearProvider()}
}

// Name implements Provider.
func (p *MeeusProvider) Name() string {
	return "meeus"
}

// Longitude implements Provider. jd is used as JDE; the ΔT offset of about
// a minute is below the model's resolution.
func (p *MeeusProvider) Longitude(body Body, jd float64) float64 {
	switch body {
	case Sun:
		return astro.Normalize360(solar.ApparentLongitude(base.J2000Century(jd)).Deg())
	case Moon:
		lon, _, _ := moonposition.Position(jd)
		return astro.Normalize360(lon.Deg())
	default:
		return p.planets.Longitude(body, jd)
	}
}
