// Package ephem provides ecliptic positions for the charted bodies.
package ephem

import "fmt"

// Position is a body's place on the ecliptic at one instant.
// The linear model fills Longitude only.
type Position struct {
	Body           Body    `json:"body"`
	Longitude      float64 `json:"longitude"` // degrees, [0, 360)
	Latitude       float64 `json:"latitude"`
	RightAscension float64 `json:"right_ascension"`
	Declination    float64 `json:"declination"`
}

// Provider defines the interface for ephemeris models.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Longitude returns the ecliptic longitude of body at Julian Date jd,
	// in degrees within [0, 360).
	Longitude(body Body, jd float64) float64
}

// Positions evaluates p for every body in enumeration order.
func Positions(p Provider, jd float64) []Position {
	out := make([]Position, 0, numBodies)
	for _, b := range Bodies() {
		out = append(out, Position{
			Body:      b,
			Longitude: p.Longitude(b, jd),
		})
	}
	return out
}

// Mode represents which ephemeris model to use.
type Mode int

const (
	ModeLinear Mode = iota // Mean-motion model (default)
	ModeMeeus              // Meeus Sun and Moon, linear planets
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeMeeus:
		return "meeus"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. The empty string selects ModeLinear.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "linear":
		return ModeLinear, nil
	case "meeus":
		return ModeMeeus, nil
	default:
		return ModeLinear, fmt.Errorf("unknown ephemeris mode %q (expected linear|meeus)", s)
	}
}

// NewProvider returns the provider for mode.
func NewProvider(mode Mode) Provider {
	if mode == ModeMeeus {
		return NewMeeusProvider()
	}
	return NewLinearProvider()
}
