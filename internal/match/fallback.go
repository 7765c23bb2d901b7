package match

import (
	"slices"

	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/lines"
)

type exemplar struct {
	name        string
	country     string
	at          geo.Coordinates
	body        ephem.Body
	family      lines.Family
	description string
}

// fallbackPool tops up sparse results, in this order.
var fallbackPool = []exemplar{
	{
		name:        "Bali",
		country:     "Indonesia",
		at:          geo.Coordinates{Lat: -8.3405, Lon: 115.0920},
		body:        ephem.Venus,
		family:      lines.Ascendant,
		description: "Strong influences for creativity, romance, and artistic expression. Ideal for pursuing creative projects or finding love.",
	},
	{
		name:        "Tokyo",
		country:     "Japan",
		at:          geo.Coordinates{Lat: 35.6762, Lon: 139.6503},
		body:        ephem.Jupiter,
		family:      lines.Midheaven,
		description: "Excellent for career growth, learning opportunities, and expanding your horizons. Great for professional development.",
	},
	{
		name:        "Santorini",
		country:     "Greece",
		at:          geo.Coordinates{Lat: 36.3932, Lon: 25.4615},
		body:        ephem.Sun,
		family:      lines.Midheaven,
		description: "Powerful for personal identity, leadership roles, and self-expression. Perfect for finding your authentic self.",
	},
}

// FallbackNames returns the fallback pool's city names in order.
func FallbackNames() []string {
	out := make([]string, len(fallbackPool))
	for i, fb := range fallbackPool {
		out[i] = fb.name
	}
	return out
}

func (c Config) fallback(fb exemplar) Recommendation {
	return Recommendation{
		ID:          RecommendationID(fb.name, fb.body, fb.family),
		Name:        fb.name,
		Country:     fb.country,
		Coordinates: fb.at,
		Influence: Influence{
			Body:   fb.body,
			Family: fb.family,
			Label:  FallbackLabel,
			Color:  fb.body.Color(),
		},
		Description: fb.description,
		Themes:      slices.Clone(fb.body.Info().Themes),
		Strength:    c.FallbackStrength,
		Fallback:    true,
	}
}
