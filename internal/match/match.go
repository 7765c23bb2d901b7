// Package match ranks gazetteer cities by how closely astrocartography
// lines pass near them.
package match

import (
	"cmp"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/lines"
)

// FallbackLabel is the influence label carried by fallback entries.
const FallbackLabel = "General Influence"

// idNamespace scopes recommendation IDs.
var idNamespace = uuid.MustParse("5b0f3c8e-2f4d-4d1a-9a57-8c1e4e7d2a61")

// Config controls matching and ranking.
type Config struct {
	MaxLines         int        // candidate lines considered, in generation order
	RadiusKm         float64    // a city matches when strictly closer than this to a line
	PerLine          int        // cities kept per line
	MinResults       int        // below this, the fallback pool tops up
	MaxResults       int        // final truncation
	FloorStrength    float64    // lowest strength a match can score
	ScaleKm          float64    // birth distance at which strength reaches zero before flooring
	FallbackStrength float64    // flat strength of fallback entries
	AllowList        *AllowList // nil means MajorCitiesV1
}

// DefaultConfig returns the standard ranking parameters.
func DefaultConfig() Config {
	return Config{
		MaxLines:         5,
		RadiusKm:         500,
		PerLine:          2,
		MinResults:       3,
		MaxResults:       6,
		FloorStrength:    0.7,
		ScaleKm:          20000,
		FallbackStrength: 0.75,
		AllowList:        MajorCitiesV1,
	}
}

// Influence is the line a recommendation is attributed to.
type Influence struct {
	Body   ephem.Body   `json:"body"`
	Family lines.Family `json:"family"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
}

// Recommendation is one ranked city.
type Recommendation struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Country     string          `json:"country"`
	Coordinates geo.Coordinates `json:"coordinates"`
	Influence   Influence       `json:"primary_influence"`
	Description string          `json:"description"`
	Themes      []string        `json:"themes"`
	Strength    float64         `json:"strength"`
	// LineDistanceKm is the distance from the city to the matched line.
	// Zero for fallback entries.
	LineDistanceKm float64 `json:"line_distance_km,omitempty"`
	Fallback       bool    `json:"fallback,omitempty"`
}

// Recommend ranks cities against ls with DefaultConfig.
func Recommend(ls []lines.Line, cities []gazetteer.City, birth geo.Coordinates) []Recommendation {
	return DefaultConfig().Recommend(ls, cities, birth)
}

// Recommend ranks cities against ls. The birth location only affects
// strength, never which cities match.
//
// Candidate lines and cities are both visited in input order, so ties are
// resolved by order rather than proximity. A city already recommended by
// an earlier line is skipped and does not count toward the per-line cap.
func (c Config) Recommend(ls []lines.Line, cities []gazetteer.City, birth geo.Coordinates) []Recommendation {
	allow := c.AllowList
	if allow == nil {
		allow = MajorCitiesV1
	}

	var recs []Recommendation
	seen := make(map[string]bool)

	for _, line := range c.candidates(ls) {
		kept := 0
		for _, city := range cities {
			if kept >= c.PerLine {
				break
			}
			if seen[city.Name] || !allow.Contains(city.Name) {
				continue
			}
			d := geo.MinDistanceKm(city.Coordinates(), line.Coordinates)
			if !(d < c.RadiusKm) {
				continue
			}
			recs = append(recs, c.matched(line, city, d, birth))
			seen[city.Name] = true
			kept++
		}
	}

	for _, fb := range fallbackPool {
		if len(recs) >= c.MinResults {
			break
		}
		if seen[fb.name] {
			continue
		}
		recs = append(recs, c.fallback(fb))
		seen[fb.name] = true
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(b.Strength, a.Strength)
	})
	if c.MaxResults >= 0 && len(recs) > c.MaxResults {
		recs = recs[:c.MaxResults]
	}
	return recs
}

// candidates returns the first MaxLines lines of an implemented family.
func (c Config) candidates(ls []lines.Line) []lines.Line {
	out := make([]lines.Line, 0, c.MaxLines)
	for _, l := range ls {
		if len(out) >= c.MaxLines {
			break
		}
		if l.Family.Implemented() {
			out = append(out, l)
		}
	}
	return out
}

// Strength scores a matched city by its distance from the birth place.
func (c Config) Strength(birthDistanceKm float64) float64 {
	return math.Max(c.FloorStrength, 1-birthDistanceKm/c.ScaleKm)
}

func (c Config) matched(line lines.Line, city gazetteer.City, lineDist float64, birth geo.Coordinates) Recommendation {
	info := line.Body.Info()
	return Recommendation{
		ID:          RecommendationID(city.Name, line.Body, line.Family),
		Name:        city.Name,
		Country:     city.Country,
		Coordinates: city.Coordinates(),
		Influence: Influence{
			Body:   line.Body,
			Family: line.Family,
			Label:  line.Family.Label(),
			Color:  line.Color,
		},
		Description:    line.Influence + ". " + info.Benefit,
		Themes:         slices.Clone(info.Themes),
		Strength:       c.Strength(geo.DistanceKm(birth, city.Coordinates())),
		LineDistanceKm: lineDist,
	}
}

// RecommendationID derives a stable identifier from the city name and the
// line it was matched on.
func RecommendationID(name string, body ephem.Body, fam lines.Family) string {
	return uuid.NewSHA1(idNamespace, []byte(name+"|"+body.String()+"|"+fam.String())).String()
}
