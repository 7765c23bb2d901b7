package ephem

import (
	"fmt"
	"strings"
)

// Body identifies one of the charted solar-system bodies. The set is closed:
// the only values are the constants below.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn

	numBodies = iota
)

// DefaultColor is the display color for anything without a table entry.
const DefaultColor = "#6B7280"

// DefaultInfluence describes a line family that has no body-specific text.
const DefaultInfluence = "General planetary influence"

// BodyInfo is the reference data attached to a body.
type BodyInfo struct {
	Name      string
	Color     string   // hex display color
	Themes    []string // life areas the body is associated with
	Benefit   string   // what living under the body's lines offers
	Ascendant string   // influence text for the ascendant line, if any
	Midheaven string   // influence text for the midheaven line, if any
}

// bodyTable is indexed by Body. Callers must not modify the slices.
var bodyTable = [numBodies]BodyInfo{
	Sun: {
		Name:      "Sun",
		Color:     "#F59E0B",
		Themes:    []string{"Identity", "Leadership", "Confidence"},
		Benefit:   "Perfect for finding your authentic self",
		Ascendant: "Personal identity and self-expression",
		Midheaven: "Career recognition and leadership",
	},
	Moon: {
		Name:      "Moon",
		Color:     "#3B82F6",
		Themes:    []string{"Home", "Intuition", "Family"},
		Benefit:   "A nurturing place to put down roots",
		Ascendant: "Emotional sensitivity and intuition",
		Midheaven: "Public recognition and popularity",
	},
	Mercury: {
		Name:    "Mercury",
		Color:   "#10B981",
		Themes:  []string{"Communication", "Learning", "Travel"},
		Benefit: "Well suited to study, writing and networking",
	},
	Venus: {
		Name:      "Venus",
		Color:     "#EC4899",
		Themes:    []string{"Love", "Creativity", "Beauty"},
		Benefit:   "Ideal for pursuing creative projects or finding love",
		Ascendant: "Love, beauty, and artistic expression",
		Midheaven: "Creative career success",
	},
	Mars: {
		Name:    "Mars",
		Color:   "#EF4444",
		Themes:  []string{"Energy", "Courage", "Action"},
		Benefit: "Good for bold starts and physical challenges",
	},
	Jupiter: {
		Name:      "Jupiter",
		Color:     "#3B82F6",
		Themes:    []string{"Career", "Growth", "Learning"},
		Benefit:   "Great for professional development",
		Ascendant: "Growth, expansion, and good fortune",
		Midheaven: "Career advancement and success",
	},
	Saturn: {
		Name:    "Saturn",
		Color:   "#8B5CF6",
		Themes:  []string{"Discipline", "Structure", "Mastery"},
		Benefit: "Rewards patient, long-term commitments",
	},
}

// bodiesByName maps lowercase names to bodies.
var bodiesByName = func() map[string]Body {
	m := make(map[string]Body, numBodies)
	for b := Body(0); b < numBodies; b++ {
		m[strings.ToLower(bodyTable[b].Name)] = b
	}
	return m
}()

// Bodies returns every body in enumeration order.
func Bodies() []Body {
	out := make([]Body, numBodies)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

// ParseBody looks up a body by name, ignoring case.
func ParseBody(s string) (Body, bool) {
	b, ok := bodiesByName[strings.ToLower(strings.TrimSpace(s))]
	return b, ok
}

// Valid reports whether b is one of the declared bodies.
func (b Body) Valid() bool {
	return b >= 0 && b < numBodies
}

// Info returns the reference data for b.
func (b Body) Info() BodyInfo {
	if !b.Valid() {
		return BodyInfo{Name: fmt.Sprintf("Body(%d)", int(b)), Color: DefaultColor}
	}
	return bodyTable[b]
}

// String returns the body name.
func (b Body) String() string {
	return b.Info().Name
}

// Color returns the body's display color.
func (b Body) Color() string {
	return b.Info().Color
}

// MarshalText encodes the body as its name.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(bodyTable[b].Name), nil
}

// UnmarshalText decodes a body name.
func (b *Body) UnmarshalText(text []byte) error {
	v, ok := ParseBody(string(text))
	if !ok {
		return fmt.Errorf("unknown body %q", string(text))
	}
	*b = v
	return nil
}
