// Package gazetteer provides the read-only table of world cities that
// recommendations are drawn from.
package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/litescript/ls-astromap/internal/geo"
)

// DefaultSearchLimit caps Search results when the caller passes limit <= 0.
const DefaultSearchLimit = 10

// ErrEmpty is returned when a source yields no cities.
var ErrEmpty = errors.New("gazetteer is empty")

// City is one gazetteer record.
type City struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	TZ      string  `json:"tz,omitempty"`
	Pop     int64   `json:"pop,omitempty"`
}

// Coordinates returns the city's position.
func (c City) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

// Label returns "Name, Country".
func (c City) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

// Source loads the full city table.
type Source interface {
	// Name identifies the source for logging.
	Name() string

	// Load returns every city in the source's canonical order.
	Load(ctx context.Context) ([]City, error)
}

// Catalog is an immutable, loaded gazetteer. It is safe for concurrent use.
type Catalog struct {
	source string
	cities []City
}

// Open loads src once and returns the resulting catalog.
func Open(ctx context.Context, src Source) (*Catalog, error) {
	cities, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer from %s: %w", src.Name(), err)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("load gazetteer from %s: %w", src.Name(), ErrEmpty)
	}
	for i, c := range cities {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("load gazetteer from %s: record %d has no name", src.Name(), i)
		}
		if !geo.ValidLat(c.Lat) || !geo.ValidLon(c.Lon) {
			return nil, fmt.Errorf("load gazetteer from %s: %s has invalid coordinates (%v, %v)",
				src.Name(), c.Name, c.Lat, c.Lon)
		}
	}
	return &Catalog{source: src.Name(), cities: cities}, nil
}

// NewCatalog wraps an in-memory city list. The slice must not be modified
// afterwards.
func NewCatalog(cities []City) *Catalog {
	return &Catalog{source: "memory", cities: cities}
}

// Source returns the name of the source the catalog was loaded from.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Len returns the number of cities.
func (c *Catalog) Len() int {
	return len(c.All())
}

// All returns the cities in source order. Callers must not modify the slice.
// A nil catalog has no cities, and the other methods treat it as empty.
func (c *Catalog) All() []City {
	if c == nil {
		return nil
	}
	return c.cities
}

// Search returns cities whose name, or "name, country", contains query,
// case-insensitively, most populous first. Ties keep source order.
func (c *Catalog) Search(query string, limit int) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var hits []City
	for _, city := range c.All() {
		if strings.Contains(strings.ToLower(city.Name), q) ||
			strings.Contains(strings.ToLower(city.Label()), q) {
			hits = append(hits, city)
		}
	}

	slices.SortStableFunc(hits, func(a, b City) int {
		switch {
		case a.Pop > b.Pop:
			return -1
		case a.Pop < b.Pop:
			return 1
		default:
			return 0
		}
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Lookup returns the first city whose name matches exactly, ignoring case.
// A "Name, Country" query narrows the match to that country.
func (c *Catalog) Lookup(name string) (City, bool) {
	name = strings.TrimSpace(name)
	for _, city := range c.All() {
		if strings.EqualFold(city.Name, name) || strings.EqualFold(city.Label(), name) {
			return city, true
		}
	}
	return City{}, false
}
