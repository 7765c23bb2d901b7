package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/match"
	"github.com/litescript/ls-astromap/internal/state"
)

func TestPlacesModel_View(t *testing.T) {
	m := NewPlacesModel().SetSize(100, 30)
	if got := m.View(); !strings.Contains(got, "No recommendations") {
		t.Errorf("empty View() = %q", got)
	}

	snap := state.Snapshot{
		Result: &astrocarto.Result{
			Positions: []ephem.Position{
				{Body: ephem.Sun, Longitude: 0.5},
				{Body: ephem.Moon, Longitude: 345},
			},
			Recommendations: []match.Recommendation{{
				Name: "Tokyo", Country: "Japan",
				Coordinates: geo.Coordinates{Lat: 35.68, Lon: 139.69},
				Influence:   match.Influence{Label: "Sun Midheaven"},
				Strength:    0.91, LineDistanceKm: 120,
				Description: "Recognition and career focus",
				Themes:      []string{"career", "visibility"},
			}},
		},
		Events: []state.Event{{Timestamp: time.Now(), Type: state.EventChart, Place: "Tokyo"}},
	}
	m = m.UpdateData(snap)

	rec, ok := m.Selected()
	if !ok || rec.Name != "Tokyo" {
		t.Fatalf("Selected() = %+v, %v", rec, ok)
	}

	v := m.View()
	for _, want := range []string{"Sun", "Aries", "Moon", "Pisces", "Tokyo, Japan", "91%", "120 km from line", "career", "Recent changes"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = m.UpdateData(state.Snapshot{})
	if len(m.positions) != 0 {
		t.Errorf("positions kept after empty snapshot: %v", m.positions)
	}
}
