package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/report"
)

// Output formats for the chart command.
const (
	formatPretty  = "pretty"
	formatJSON    = "json"
	formatGeoJSON = "geojson"
)

// locationFlags describe the birth place on the command line: either a
// gazetteer name or explicit coordinates.
type locationFlags struct {
	place    string
	name     string
	lat      float64
	lon      float64
	timezone string
	hasLat   bool
	hasLon   bool
}

func (f *locationFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.place, "place", "p", "", `birth place looked up in the gazetteer ("Paris" or "Paris, France")`)
	fl.StringVar(&f.name, "name", "", "display name when using --lat/--lon")
	fl.Float64Var(&f.lat, "lat", 0, "birth latitude in degrees")
	fl.Float64Var(&f.lon, "lon", 0, "birth longitude in degrees")
	fl.StringVar(&f.timezone, "tz", "", "timezone label (detected from longitude if empty)")
	cmd.MarkFlagsMutuallyExclusive("place", "lat")
	cmd.MarkFlagsMutuallyExclusive("place", "lon")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
}

// resolve turns the flags into a Location.
func (f locationFlags) resolve(cat *gazetteer.Catalog) (astrocarto.Location, error) {
	if f.place != "" {
		city, ok := cat.Lookup(f.place)
		if !ok {
			return astrocarto.Location{}, fmt.Errorf("unknown place %q (try: ls-astromap cities search %q)", f.place, f.place)
		}
		loc := astrocarto.Location{Name: city.Name, Lat: city.Lat, Lon: city.Lon, Timezone: city.TZ}
		if f.timezone != "" {
			loc.Timezone = f.timezone
		}
		return loc, nil
	}

	if !f.hasLat || !f.hasLon {
		return astrocarto.Location{}, errors.New("birth place required: use --place or --lat and --lon")
	}
	name := strings.TrimSpace(f.name)
	if name == "" {
		name = fmt.Sprintf("%.4f, %.4f", f.lat, f.lon)
	}
	return astrocarto.Location{Name: name, Lat: f.lat, Lon: f.lon, Timezone: f.timezone}, nil
}

func chartCmd(a *app) *cobra.Command {
	var (
		date, clock string
		format      string
		out         string
		loc         locationFlags
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute lines and recommendations for a birth moment",
		Example: `  ls-astromap chart --date 1990-07-04 --time 14:30 --place Paris
  ls-astromap chart --date 2024-03-20 --time 12:00 --lat -8.34 --lon 115.09 --name Bali --format geojson`,
		RunE: func(c *cobra.Command, _ []string) error {
			switch format {
			case formatPretty, formatJSON, formatGeoJSON:
			default:
				return fmt.Errorf("unknown format %q (expected pretty|json|geojson)", format)
			}
			loc.hasLat = c.Flags().Changed("lat")
			loc.hasLon = c.Flags().Changed("lon")

			cat, eng, err := a.setup(c.Context())
			if err != nil {
				return err
			}
			location, err := loc.resolve(cat)
			if err != nil {
				return err
			}

			res, err := eng.Calculate(astrocarto.BirthData{Date: date, Time: clock, Location: location})
			if err != nil {
				return err
			}
			a.log.Info("chart.done", "place", res.BirthData.Location.Name, "recommendations", len(res.Recommendations))

			return writeOutput(c.OutOrStdout(), out, func(w io.Writer) error {
				return writeChart(w, format, res)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "birth date, YYYY-MM-DD (UTC)")
	cmd.Flags().StringVarP(&clock, "time", "t", "", "birth time, HH:MM or HH:MM:SS (UTC)")
	cmd.Flags().StringVarP(&format, "format", "f", formatPretty, "output format: pretty, json or geojson")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "write output to a file (- for stdout)")
	loc.register(cmd)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func writeChart(w io.Writer, format string, res *astrocarto.Result) error {
	switch format {
	case formatJSON:
		return report.WriteJSON(w, res)
	case formatGeoJSON:
		return report.WriteGeoJSON(w, res)
	default:
		report.WriteSummary(w, res)
		return nil
	}
}

// writeOutput runs write against stdout or the named file.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
