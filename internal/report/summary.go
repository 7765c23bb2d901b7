package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/lines"
)

const ruleWidth = 78

// WriteSummary writes plain-text tables of positions, lines and
// recommendations. Color swatches are rendered only when w is a terminal.
func WriteSummary(w io.Writer, res *astrocarto.Result) {
	if res == nil {
		fmt.Fprintln(w, "No chart")
		return
	}

	r := lipgloss.NewRenderer(w)
	swatch := func(color string) string {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
	}

	b := res.BirthData
	fmt.Fprintf(w, "Chart for %s @ %s %s (%s)\n", b.Location.Name, b.Date, b.Time, b.Location.Timezone)
	fmt.Fprintf(w, "JD %.5f  ephemeris %s\n", res.JulianDate, res.Ephemeris)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	fmt.Fprintln(w, "Positions")
	fmt.Fprintf(w, "  %-10s %10s  %s\n", "Body", "Longitude", "Sign")
	for _, p := range res.Positions {
		sign, deg := Sign(p.Longitude)
		fmt.Fprintf(w, "%s %-10s %9.2f°  %s %.2f°\n",
			swatch(p.Body.Color()), p.Body, p.Longitude, sign, deg)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lines")
	fmt.Fprintf(w, "  %-10s %-15s %9s  %s\n", "Body", "Line", "Equator", "Influence")
	for _, l := range res.Lines {
		fmt.Fprintf(w, "%s %-10s %-15s %8.2f°  %s\n",
			swatch(l.Color), l.Body, l.Family.Label(), equatorLon(l), truncateStr(l.Influence, 36))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommendations")
	if len(res.Recommendations) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	fmt.Fprintf(w, "  %-2s %-28s %-22s %8s  %s\n", "#", "Place", "Influence", "Strength", "Themes")
	for i, rec := range res.Recommendations {
		influence := rec.Influence.Body.String() + " " + rec.Influence.Label
		if rec.Fallback {
			influence = rec.Influence.Label
		}
		fmt.Fprintf(w, "%s %-2d %-28s %-22s %7.0f%%  %s\n",
			swatch(rec.Influence.Color),
			i+1,
			truncateStr(rec.Name+", "+rec.Country, 28),
			truncateStr(influence, 22),
			rec.Strength*100,
			strings.Join(rec.Themes, ", "),
		)
	}
	fmt.Fprintf(w, "\nTotal: %d recommendations\n", len(res.Recommendations))
}

// equatorLon returns the curve's longitude at latitude zero.
func equatorLon(l lines.Line) float64 {
	for _, c := range l.Coordinates {
		if c.Lat == 0 {
			return c.Lon
		}
	}
	return 0
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
