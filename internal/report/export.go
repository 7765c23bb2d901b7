// Package report renders chart results as JSON, GeoJSON and text.
package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/version"
)

// ChartExport is the JSON-serializable representation of a result.
type ChartExport struct {
	Version         string                 `json:"version"`
	Ephemeris       string                 `json:"ephemeris"`
	JulianDate      float64                `json:"julian_date"`
	Birth           BirthExport            `json:"birth"`
	Positions       []PositionExport       `json:"positions"`
	Lines           []LineExport           `json:"lines"`
	Recommendations []RecommendationExport `json:"recommendations"`
}

// BirthExport is the input echoed back with the detected timezone.
type BirthExport struct {
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Place    string  `json:"place"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// PositionExport is one body's position. The simplified models leave
// latitude, right ascension and declination at zero.
type PositionExport struct {
	Body           string  `json:"body"`
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	RightAscension float64 `json:"right_ascension"`
	Declination    float64 `json:"declination"`
	Sign           string  `json:"sign"`
	Degree         float64 `json:"degree"` // within the sign
	Color          string  `json:"color"`
}

// LineExport is one astrocartography curve.
type LineExport struct {
	Body        string            `json:"body"`
	Family      string            `json:"family"`
	Label       string            `json:"label"`
	Color       string            `json:"color"`
	Influence   string            `json:"influence"`
	Coordinates []geo.Coordinates `json:"coordinates"`
}

// RecommendationExport is a JSON-friendly recommendation card.
type RecommendationExport struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Body        string   `json:"body"`
	Family      string   `json:"family"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Themes      []string `json:"themes"`
	Strength    float64  `json:"strength"`
	LineKm      float64  `json:"line_distance_km,omitempty"`
	Fallback    bool     `json:"fallback"`
}

var signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Sign returns the zodiac sign of an ecliptic longitude and the degree
// within it.
func Sign(longitude float64) (string, float64) {
	i := int(math.Floor(longitude/30)) % 12
	if i < 0 {
		i += 12
	}
	return signs[i], longitude - 30*math.Floor(longitude/30)
}

// Export converts a result to an exportable format.
func Export(res *astrocarto.Result) *ChartExport {
	export := &ChartExport{Version: version.Version}
	if res == nil {
		return export
	}

	b := res.BirthData
	export.Ephemeris = res.Ephemeris
	export.JulianDate = res.JulianDate
	export.Birth = BirthExport{
		Date:     b.Date,
		Time:     b.Time,
		Place:    b.Location.Name,
		Lat:      b.Location.Lat,
		Lon:      b.Location.Lon,
		Timezone: b.Location.Timezone,
	}

	for _, p := range res.Positions {
		sign, deg := Sign(p.Longitude)
		export.Positions = append(export.Positions, PositionExport{
			Body:           p.Body.String(),
			Longitude:      p.Longitude,
			Latitude:       p.Latitude,
			RightAscension: p.RightAscension,
			Declination:    p.Declination,
			Sign:           sign,
			Degree:         deg,
			Color:          p.Body.Color(),
		})
	}

	for _, l := range res.Lines {
		export.Lines = append(export.Lines, LineExport{
			Body:        l.Body.String(),
			Family:      l.Family.String(),
			Label:       l.Family.Label(),
			Color:       l.Color,
			Influence:   l.Influence,
			Coordinates: l.Coordinates,
		})
	}

	for _, r := range res.Recommendations {
		export.Recommendations = append(export.Recommendations, RecommendationExport{
			ID:          r.ID,
			Name:        r.Name,
			Country:     r.Country,
			Lat:         r.Coordinates.Lat,
			Lon:         r.Coordinates.Lon,
			Body:        r.Influence.Body.String(),
			Family:      r.Influence.Family.String(),
			Label:       r.Influence.Label,
			Color:       r.Influence.Color,
			Description: r.Description,
			Themes:      r.Themes,
			Strength:    r.Strength,
			LineKm:      r.LineDistanceKm,
			Fallback:    r.Fallback,
		})
	}

	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteJSON exports res and writes it as JSON.
func WriteJSON(w io.Writer, res *astrocarto.Result) error {
	return Export(res).WriteJSON(w)
}
