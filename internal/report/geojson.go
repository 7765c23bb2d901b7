package report

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/litescript/ls-astromap/internal/astrocarto"
)

// Feature kinds carried in the "kind" property.
const (
	KindLine           = "line"
	KindRecommendation = "recommendation"
	KindBirth          = "birth"
)

// GeoJSON builds a FeatureCollection with one LineString per line, one
// Point per recommendation and a Point for the birth place.
func GeoJSON(res *astrocarto.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if res == nil {
		return fc
	}

	for _, l := range res.Lines {
		ls := make(orb.LineString, 0, len(l.Coordinates))
		for _, c := range l.Coordinates {
			ls = append(ls, orb.Point{c.Lon, c.Lat})
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = KindLine
		f.Properties["body"] = l.Body.String()
		f.Properties["family"] = l.Family.String()
		f.Properties["label"] = l.Family.Label()
		f.Properties["color"] = l.Color
		f.Properties["influence"] = l.Influence
		fc.Append(f)
	}

	for _, r := range res.Recommendations {
		f := geojson.NewFeature(orb.Point{r.Coordinates.Lon, r.Coordinates.Lat})
		f.ID = r.ID
		f.Properties["kind"] = KindRecommendation
		f.Properties["name"] = r.Name
		f.Properties["country"] = r.Country
		f.Properties["body"] = r.Influence.Body.String()
		f.Properties["label"] = r.Influence.Label
		f.Properties["color"] = r.Influence.Color
		f.Properties["strength"] = r.Strength
		f.Properties["fallback"] = r.Fallback
		fc.Append(f)
	}

	loc := res.BirthData.Location
	birth := geojson.NewFeature(orb.Point{loc.Lon, loc.Lat})
	birth.Properties["kind"] = KindBirth
	birth.Properties["name"] = loc.Name
	birth.Properties["timezone"] = loc.Timezone
	fc.Append(birth)

	return fc
}

// WriteGeoJSON writes res as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, res *astrocarto.Result) error {
	data, err := GeoJSON(res).MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
