// Package lines projects ecliptic positions onto the Earth as
// astrocartography curves.
package lines

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astromap/internal/astro"
	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/geo"
)

// Sampling grid for every generated curve.
const (
	MinLat      = -80.0
	MaxLat      = 80.0
	LatStep     = 5.0
	SampleCount = int((MaxLat-MinLat)/LatStep) + 1 // 33

	// Amplitude is the longitude swing in degrees applied as lat varies.
	Amplitude = 10.0
)

// ErrFamilyNotImplemented is returned for declared families that have no
// projection yet.
var ErrFamilyNotImplemented = errors.New("line family not implemented")

// Family is one of the four angular line families.
type Family int

const (
	Ascendant Family = iota
	Midheaven
	Descendant
	Nadir
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case Ascendant:
		return "ascendant"
	case Midheaven:
		return "midheaven"
	case Descendant:
		return "descendant"
	case Nadir:
		return "nadir"
	default:
		return "unknown"
	}
}

// Label returns the human-readable line label, e.g. "Ascendant Line".
func (f Family) Label() string {
	switch f {
	case Ascendant:
		return "Ascendant Line"
	case Midheaven:
		return "Midheaven Line"
	case Descendant:
		return "Descendant Line"
	case Nadir:
		return "Nadir Line"
	default:
		return "Unknown Line"
	}
}

// Implemented reports whether Generate can project this family.
func (f Family) Implemented() bool {
	return f == Ascendant || f == Midheaven
}

// ParseFamily parses a family name as produced by String.
func ParseFamily(s string) (Family, bool) {
	for f := Ascendant; f <= Nadir; f++ {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

// MarshalText encodes the family as its name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a family name.
func (f *Family) UnmarshalText(text []byte) error {
	v, ok := ParseFamily(string(text))
	if !ok {
		return fmt.Errorf("unknown line family %q", string(text))
	}
	*f = v
	return nil
}

// Line is one body's curve for one family, sampled south to north.
type Line struct {
	Body        ephem.Body        `json:"body"`
	Family      Family            `json:"family"`
	Coordinates []geo.Coordinates `json:"coordinates"`
	Color       string            `json:"color"`
	Influence   string            `json:"influence"`
}

// Influence returns the descriptive text for body on a family's line.
func Influence(body ephem.Body, fam Family) string {
	info := body.Info()
	var text string
	switch fam {
	case Ascendant:
		text = info.Ascendant
	case Midheaven:
		text = info.Midheaven
	}
	if text == "" {
		return ephem.DefaultInfluence
	}
	return text
}

// baseLongitude is the curve's longitude at the equator, in [0, 360).
func baseLongitude(lon float64, fam Family) float64 {
	if fam == Midheaven {
		return astro.Normalize360(lon + 90)
	}
	return lon
}

// Generate projects pos into a curve of the given family.
func Generate(pos ephem.Position, fam Family) (Line, error) {
	if !fam.Implemented() {
		return Line{}, fmt.Errorf("generate %s line for %s: %w", fam, pos.Body, ErrFamilyNotImplemented)
	}
	return project(pos, fam), nil
}

// GenerateAll returns the ascendant and midheaven lines for each position,
// in input order: two lines per body.
func GenerateAll(positions []ephem.Position) []Line {
	out := make([]Line, 0, 2*len(positions))
	for _, pos := range positions {
		out = append(out, project(pos, Ascendant), project(pos, Midheaven))
	}
	return out
}

func project(pos ephem.Position, fam Family) Line {
	base := baseLongitude(pos.Longitude, fam)
	coords := make([]geo.Coordinates, 0, SampleCount)
	for i := 0; i < SampleCount; i++ {
		lat := MinLat + float64(i)*LatStep
		lon := astro.Normalize360(base + Amplitude*math.Sin(astro.DegToRad(lat)))
		coords = append(coords, geo.Coordinates{Lat: lat, Lon: astro.SignedLongitude(lon)})
	}

	return Line{
		Body:        pos.Body,
		Family:      fam,
		Coordinates: coords,
		Color:       pos.Body.Color(),
		Influence:   Influence(pos.Body, fam),
	}
}
