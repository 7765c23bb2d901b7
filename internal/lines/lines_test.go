package lines

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-astromap/internal/ephem"
)

func TestGenerate_Sampling(t *testing.T) {
	line, err := Generate(ephem.Position{Body: ephem.Sun, Longitude: 0}, Ascendant)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(line.Coordinates) != 33 {
		t.Fatalf("len(Coordinates) = %d, want 33", len(line.Coordinates))
	}
	if line.Coordinates[0].Lat != -80 || line.Coordinates[32].Lat != 80 {
		t.Errorf("latitude span = [%v, %v], want [-80, 80]", line.Coordinates[0].Lat, line.Coordinates[32].Lat)
	}
	for i := 1; i < len(line.Coordinates); i++ {
		if d := line.Coordinates[i].Lat - line.Coordinates[i-1].Lat; d != 5 {
			t.Fatalf("latitude step at %d = %v, want 5", i, d)
		}
	}
}

func TestGenerate_Longitudes(t *testing.T) {
	tests := []struct {
		name    string
		lon     float64
		fam     Family
		lat     float64
		wantLon float64
	}{
		{"ascendant at equator", 0, Ascendant, 0, 0},
		{"ascendant north swing", 0, Ascendant, 30, 5},
		{"ascendant south swing wraps negative", 0, Ascendant, -30, -5},
		{"midheaven offset", 0, Midheaven, 0, 90},
		{"midheaven wraps past 360", 300, Midheaven, 0, 30},
		{"crosses antimeridian", 175, Ascendant, 80, 175 + 10*math.Sin(80*math.Pi/180) - 360},
		{"exactly 180 stays positive", 180, Ascendant, 0, 180},
		{"just past 180 becomes negative", 181, Ascendant, 0, -179},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Generate(ephem.Position{Body: ephem.Mars, Longitude: tt.lon}, tt.fam)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			idx := int((tt.lat - MinLat) / LatStep)
			got := line.Coordinates[idx]
			if got.Lat != tt.lat {
				t.Fatalf("sample %d has lat %v, want %v", idx, got.Lat, tt.lat)
			}
			if math.Abs(got.Lon-tt.wantLon) > 1e-9 {
				t.Errorf("lon at lat %v = %.6f, want %.6f", tt.lat, got.Lon, tt.wantLon)
			}
		})
	}
}

func TestGenerate_LongitudeRange(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 7.3 {
		for _, fam := range []Family{Ascendant, Midheaven} {
			line, err := Generate(ephem.Position{Body: ephem.Moon, Longitude: lon}, fam)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			for _, c := range line.Coordinates {
				if c.Lon <= -180 || c.Lon > 180 {
					t.Fatalf("λ=%.1f %s: lon %v outside (-180, 180]", lon, fam, c.Lon)
				}
			}
		}
	}
}

func TestGenerate_Metadata(t *testing.T) {
	line, err := Generate(ephem.Position{Body: ephem.Venus, Longitude: 42}, Midheaven)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if line.Body != ephem.Venus || line.Family != Midheaven {
		t.Errorf("line = %s/%s, want Venus/midheaven", line.Body, line.Family)
	}
	if line.Color != "#EC4899" {
		t.Errorf("Color = %s, want #EC4899", line.Color)
	}
	if line.Influence != "Creative career success" {
		t.Errorf("Influence = %q", line.Influence)
	}
}

func TestGenerate_Unimplemented(t *testing.T) {
	for _, fam := range []Family{Descendant, Nadir} {
		_, err := Generate(ephem.Position{Body: ephem.Sun}, fam)
		if !errors.Is(err, ErrFamilyNotImplemented) {
			t.Errorf("Generate(%s) error = %v, want ErrFamilyNotImplemented", fam, err)
		}
		if fam.Implemented() {
			t.Errorf("%s.Implemented() = true", fam)
		}
	}
}

func TestGenerateAll(t *testing.T) {
	positions := ephem.Positions(ephem.NewLinearProvider(), 2460390.0)
	all := GenerateAll(positions)

	if len(all) != 14 {
		t.Fatalf("GenerateAll() returned %d lines, want 14", len(all))
	}
	for i, line := range all {
		wantBody := positions[i/2].Body
		wantFam := Ascendant
		if i%2 == 1 {
			wantFam = Midheaven
		}
		if line.Body != wantBody || line.Family != wantFam {
			t.Errorf("line %d = %s/%s, want %s/%s", i, line.Body, line.Family, wantBody, wantFam)
		}
	}
}

func TestGenerateAll_Deterministic(t *testing.T) {
	positions := ephem.Positions(ephem.NewLinearProvider(), 2455000.25)
	a, b := GenerateAll(positions), GenerateAll(positions)
	for i := range a {
		for j := range a[i].Coordinates {
			if a[i].Coordinates[j] != b[i].Coordinates[j] {
				t.Fatalf("line %d sample %d differs between runs", i, j)
			}
		}
	}
}

func TestInfluence_Fallback(t *testing.T) {
	if got := Influence(ephem.Sun, Nadir); got != ephem.DefaultInfluence {
		t.Errorf("Influence(Sun, Nadir) = %q, want default", got)
	}
	if got := Influence(ephem.Jupiter, Ascendant); got != "Growth, expansion, and good fortune" {
		t.Errorf("Influence(Jupiter, Ascendant) = %q", got)
	}
}

func TestFamily_Text(t *testing.T) {
	for _, fam := range []Family{Ascendant, Midheaven, Descendant, Nadir} {
		got, ok := ParseFamily(fam.String())
		if !ok || got != fam {
			t.Errorf("ParseFamily(%q) = %v, %v", fam.String(), got, ok)
		}
	}
	if Midheaven.Label() != "Midheaven Line" {
		t.Errorf("Midheaven.Label() = %q", Midheaven.Label())
	}
	if _, ok := ParseFamily("zenith"); ok {
		t.Error("ParseFamily(zenith) should fail")
	}
}
