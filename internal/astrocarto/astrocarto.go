// Package astrocarto composes the time, ephemeris, line and matching steps
// into a single birth-chart calculation.
package astrocarto

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-astromap/internal/astro"
	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/lines"
	"github.com/litescript/ls-astromap/internal/logging"
	"github.com/litescript/ls-astromap/internal/match"
)

// Location is a named place on Earth.
type Location struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// Coordinates returns the location's position.
func (l Location) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: l.Lat, Lon: l.Lon}
}

// BirthData is the calculation input. Date is YYYY-MM-DD and Time is
// HH:MM or HH:MM:SS, both read as UTC.
type BirthData struct {
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Location Location `json:"location"`
}

// Result is everything derived from one BirthData.
type Result struct {
	BirthData       BirthData              `json:"birth_data"`
	JulianDate      float64                `json:"julian_date"`
	Ephemeris       string                 `json:"ephemeris"`
	Positions       []ephem.Position       `json:"positions"`
	Lines           []lines.Line           `json:"lines"`
	Recommendations []match.Recommendation `json:"recommendations"`
}

// Gazetteer supplies the ordered city table.
type Gazetteer interface {
	All() []gazetteer.City
}

// Engine runs calculations. The zero value is not usable: Gazetteer must
// be set. A nil Provider means the linear model.
type Engine struct {
	Provider  ephem.Provider
	Gazetteer Gazetteer
	Match     match.Config
	Logger    *logging.Logger
}

// NewEngine returns an engine with the linear provider and default ranking.
func NewEngine(gaz Gazetteer) *Engine {
	return &Engine{
		Provider:  ephem.NewLinearProvider(),
		Gazetteer: gaz,
		Match:     match.DefaultConfig(),
	}
}

// Calculate is shorthand for NewEngine(gaz).Calculate(b).
func Calculate(b BirthData, gaz Gazetteer) (*Result, error) {
	return NewEngine(gaz).Calculate(b)
}

// Calculate validates b and derives positions, lines and recommendations.
// It returns either a complete result or an *Error.
func (e *Engine) Calculate(b BirthData) (*Result, error) {
	const op = "astrocarto.Calculate"
	start := time.Now()

	at, err := Validate(b)
	if err != nil {
		return nil, err
	}
	if e.Gazetteer == nil {
		return nil, &Error{Op: op, Kind: KindReferenceDataUnavailable, Err: errors.New("no gazetteer configured")}
	}
	cities := e.Gazetteer.All()
	if len(cities) == 0 {
		return nil, &Error{Op: op, Kind: KindReferenceDataUnavailable, Err: gazetteer.ErrEmpty}
	}

	provider := e.Provider
	if provider == nil {
		provider = ephem.NewLinearProvider()
	}

	b.Location.Name = strings.TrimSpace(b.Location.Name)
	if b.Location.Timezone == "" {
		b.Location.Timezone = geo.DetectTimezone(b.Location.Lat, b.Location.Lon)
	}

	jd := astro.JulianDate(at)
	positions := ephem.Positions(provider, jd)
	ls := lines.GenerateAll(positions)
	recs := e.Match.Recommend(ls, cities, b.Location.Coordinates())

	if e.Logger != nil {
		e.Logger.Debug("chart.calculated",
			"place", b.Location.Name,
			"jd", jd,
			"ephemeris", provider.Name(),
			"lines", len(ls),
			"recommendations", len(recs),
			"duration", time.Since(start),
		)
	}

	return &Result{
		BirthData:       b,
		JulianDate:      jd,
		Ephemeris:       provider.Name(),
		Positions:       positions,
		Lines:           ls,
		Recommendations: recs,
	}, nil
}

// Validate checks b and returns the birth instant.
func Validate(b BirthData) (time.Time, error) {
	const op = "astrocarto.Validate"

	if strings.TrimSpace(b.Date) == "" {
		return time.Time{}, invalid(op, "date", errors.New("date is required"))
	}
	if strings.TrimSpace(b.Time) == "" {
		return time.Time{}, invalid(op, "time", errors.New("time is required"))
	}
	day, err := astro.ParseDate(b.Date)
	if err != nil {
		return time.Time{}, invalid(op, "date", err)
	}
	tod, err := astro.ParseClock(b.Time)
	if err != nil {
		return time.Time{}, invalid(op, "time", err)
	}

	loc := b.Location
	if strings.TrimSpace(loc.Name) == "" {
		return time.Time{}, invalid(op, "location.name", errors.New("location name is required"))
	}
	if !geo.ValidLat(loc.Lat) {
		return time.Time{}, invalid(op, "location.lat", fmt.Errorf("latitude %v outside [-90, 90]", loc.Lat))
	}
	if !geo.ValidLon(loc.Lon) {
		return time.Time{}, invalid(op, "location.lon", fmt.Errorf("longitude %v outside [-180, 180]", loc.Lon))
	}
	return day.Add(tod), nil
}

// LoadGazetteer opens src, reporting any failure as reference data
// unavailable.
func LoadGazetteer(ctx context.Context, src gazetteer.Source) (*gazetteer.Catalog, error) {
	cat, err := gazetteer.Open(ctx, src)
	if err != nil {
		return nil, &Error{Op: "astrocarto.LoadGazetteer", Kind: KindReferenceDataUnavailable, Err: err}
	}
	return cat, nil
}
