package gazetteer

import (
	"context"
	"errors"
	"testing"
)

type stubSource struct {
	cities []City
	err    error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Load(context.Context) ([]City, error) { return s.cities, s.err }

func loadEmbedded(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Open(context.Background(), EmbeddedSource{})
	if err != nil {
		t.Fatalf("Open(embedded) error = %v", err)
	}
	return cat
}

func TestOpen_Embedded(t *testing.T) {
	cat := loadEmbedded(t)

	if cat.Len() < 90 {
		t.Errorf("embedded gazetteer has %d cities, want at least 90", cat.Len())
	}
	if cat.Source() != "embedded" {
		t.Errorf("Source() = %q, want embedded", cat.Source())
	}

	first := cat.All()[0]
	if first.Name != "New York" || first.Country != "United States" {
		t.Errorf("first city = %+v, want New York", first)
	}
}

func TestOpen_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		src  Source
		is   error
	}{
		{"source error", stubSource{err: boom}, boom},
		{"empty", stubSource{}, ErrEmpty},
		{"unnamed record", stubSource{cities: []City{{Name: " ", Lat: 1, Lon: 1}}}, nil},
		{"bad latitude", stubSource{cities: []City{{Name: "Nowhere", Lat: 95, Lon: 0}}}, nil},
		{"bad longitude", stubSource{cities: []City{{Name: "Nowhere", Lat: 0, Lon: -181}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Open(context.Background(), tt.src)
			if err == nil {
				t.Fatalf("Open() = %v, want error", cat)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Open() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestOpen_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Open(ctx, EmbeddedSource{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Open() with canceled context error = %v, want context.Canceled", err)
	}
}

func TestSearch(t *testing.T) {
	cat := loadEmbedded(t)

	tests := []struct {
		name  string
		query string
		limit int
		want  []string // labels, in order
	}{
		{"by name, most populous first", "par", 10, []string{"Paris, France", "Paris, United States"}},
		{"case insensitive", "LONDON", 10, []string{"London, United Kingdom", "London, Canada"}},
		{"by country", "japan", 10, []string{
			"Tokyo, Japan", "Yokohama, Japan", "Osaka, Japan", "Sapporo, Japan", "Kyoto, Japan",
		}},
		{"limit applies after sort", "japan", 2, []string{"Tokyo, Japan", "Yokohama, Japan"}},
		{"name with country suffix", "paris, fr", 10, []string{"Paris, France"}},
		{"blank", "   ", 10, nil},
		{"no match", "atlantis", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.Search(tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d cities %v, want %d", tt.query, len(got), labels(got), len(tt.want))
			}
			for i, c := range got {
				if c.Label() != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %q, want %q", tt.query, i, c.Label(), tt.want[i])
				}
			}
		})
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	cat := loadEmbedded(t)
	got := cat.Search("a", 0)
	if len(got) != DefaultSearchLimit {
		t.Errorf("Search with limit 0 returned %d, want %d", len(got), DefaultSearchLimit)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Pop > got[i-1].Pop {
			t.Errorf("results not sorted by population at %d", i)
		}
	}
}

func TestSearch_StableTies(t *testing.T) {
	cat := NewCatalog([]City{
		{Name: "Springfield", Country: "A"},
		{Name: "Springfield", Country: "B"},
		{Name: "Springfield", Country: "C", Pop: 10},
	})
	got := cat.Search("spring", 10)
	want := []string{"C", "A", "B"}
	for i, c := range got {
		if c.Country != want[i] {
			t.Errorf("result %d country = %s, want %s", i, c.Country, want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	cat := loadEmbedded(t)

	if c, ok := cat.Lookup("bangkok"); !ok || c.Country != "Thailand" {
		t.Errorf("Lookup(bangkok) = %+v, %v", c, ok)
	}
	if c, ok := cat.Lookup("Paris, United States"); !ok || c.Lat > 40 {
		t.Errorf("Lookup(Paris, United States) = %+v, %v", c, ok)
	}
	if c, ok := cat.Lookup("Paris"); !ok || c.Country != "France" {
		t.Errorf("Lookup(Paris) = %+v, want the first Paris", c)
	}
	if _, ok := cat.Lookup("Atlantis"); ok {
		t.Error("Lookup(Atlantis) should fail")
	}
}

func TestCity_Label(t *testing.T) {
	if got := (City{Name: "Lima", Country: "Peru"}).Label(); got != "Lima, Peru" {
		t.Errorf("Label() = %q", got)
	}
	if got := (City{Name: "Lima"}).Label(); got != "Lima" {
		t.Errorf("Label() without country = %q", got)
	}
}

func labels(cities []City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Label()
	}
	return out
}

func TestCatalog_Nil(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || c.All() != nil || c.Source() != "" {
		t.Errorf("nil catalog: Len=%d All=%v Source=%q", c.Len(), c.All(), c.Source())
	}
	if hits := c.Search("par", 5); len(hits) != 0 {
		t.Errorf("Search() on nil catalog = %v", hits)
	}
	if _, ok := c.Lookup("Paris"); ok {
		t.Error("Lookup() on nil catalog found a city")
	}
}
