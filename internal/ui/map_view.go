package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/geo"
	"github.com/litescript/ls-astromap/internal/lines"
)

const (
	glyphAscendant = '│'
	glyphMidheaven = '┃'
	glyphPlace     = '★'
	glyphFallback  = '☆'
	glyphBirth     = '◉'
	glyphEquator   = '·'
	glyphCity      = '.'

	colorBackground = "236"
	colorGrid       = "60"
	colorCity       = "240"
	colorPlace      = "229"
	colorBirth      = "#FFFFFF"
)

// allBodies disables the body filter.
const allBodies ephem.Body = -1

// MapModel draws the chart lines on an equirectangular world map.
type MapModel struct {
	width  int
	height int

	result     *astrocarto.Result
	cities     []geo.Coordinates
	filter     ephem.Body
	showPlaces bool
}

// NewMapModel creates a map with no filter.
func NewMapModel() MapModel {
	return MapModel{filter: allBodies, showPlaces: true}
}

// SetSize updates the viewport size.
func (m MapModel) SetSize(width, height int) MapModel {
	m.width = width
	m.height = height
	return m
}

// SetResult replaces the drawn chart.
func (m MapModel) SetResult(res *astrocarto.Result) MapModel {
	m.result = res
	return m
}

// SetCities sets the gazetteer points drawn under the lines.
func (m MapModel) SetCities(cities []gazetteer.City) MapModel {
	m.cities = make([]geo.Coordinates, len(cities))
	for i, c := range cities {
		m.cities[i] = c.Coordinates()
	}
	return m
}

// Filter returns the body whose lines are shown, or -1 for all.
func (m MapModel) Filter() ephem.Body {
	return m.filter
}

// Update handles messages.
func (m MapModel) Update(msg tea.Msg) (MapModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "b", "right", "l":
			m.filter = cycleBody(m.filter, 1)
		case "B", "left", "h":
			m.filter = cycleBody(m.filter, -1)
		case "a":
			m.filter = allBodies
		case "p":
			m.showPlaces = !m.showPlaces
		}
	}
	return m, nil
}

// cycleBody steps through all bodies, then back to no filter.
func cycleBody(b ephem.Body, delta int) ephem.Body {
	n := len(ephem.Bodies()) + 1
	i := (int(b) + 1 + delta + n) % n
	return ephem.Body(i - 1)
}

// View renders the map.
func (m MapModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Map view requires larger terminal"
	}
	if m.result == nil {
		return dimStyle.Render("  No chart yet. Fill in the form and press enter.")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCanvas(m.width-2, m.height-4))
	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	return b.String()
}

func (m MapModel) renderHeader() string {
	filter := dimStyle.Render("All bodies")
	if m.filter != allBodies {
		filter = lipgloss.NewStyle().Foreground(lipgloss.Color(m.filter.Color())).Render(m.filter.String())
	}
	places := dimStyle.Render("Places: off")
	if m.showPlaces {
		places = accentStyle.Render("Places: on")
	}
	birth := m.result.BirthData
	return fmt.Sprintf("%s | %s | %s | %s",
		titleStyle.Render("Map"), filter, places,
		dimStyle.Render(fmt.Sprintf("%s %s %s", birth.Location.Name, birth.Date, birth.Time)))
}

func (m MapModel) renderLegend() string {
	var parts []string
	for _, body := range ephem.Bodies() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(body.Color()))
		if m.filter != allBodies && m.filter != body {
			style = dimStyle
		}
		parts = append(parts, style.Render("● "+body.String()))
	}
	return "  " + strings.Join(parts, "  ") + "   " +
		dimStyle.Render(fmt.Sprintf("%c asc %c mc %c place %c birth", glyphAscendant, glyphMidheaven, glyphPlace, glyphBirth))
}

// canvas is a grid of glyphs with one color per cell.
type canvas struct {
	w, h   int
	cells  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), colors: make([][]lipgloss.Color, h)}
	for y := 0; y < h; y++ {
		c.cells[y] = make([]rune, w)
		c.colors[y] = make([]lipgloss.Color, w)
		for x := 0; x < w; x++ {
			c.cells[y][x] = ' '
			c.colors[y][x] = colorBackground
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, color lipgloss.Color) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.colors[y][x] = color
}

// project maps a geographic point onto the canvas.
func (c *canvas) project(lat, lon float64) (int, int) {
	x := (lon + 180) / 360 * float64(c.w-1)
	y := (90 - lat) / 180 * float64(c.h-1)
	return int(math.Round(x)), int(math.Round(y))
}

// segment draws a straight run between two projected points.
func (c *canvas) segment(x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		c.set(x0, y0, r, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		c.set(x, y, r, color)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		b.WriteString(" ")
		// Batch runs of the same color to keep escape sequences short.
		runStart := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.colors[y][x] == c.colors[y][runStart] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.colors[y][runStart])
			b.WriteString(style.Render(string(c.cells[y][runStart:x])))
			runStart = x
		}
		if y < c.h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m MapModel) renderCanvas(width, height int) string {
	c := newCanvas(width, height)

	// Equator and prime meridian.
	_, eqY := c.project(0, 0)
	for x := 0; x < width; x += 2 {
		c.set(x, eqY, glyphEquator, colorGrid)
	}
	pmX, _ := c.project(0, 0)
	for y := 0; y < height; y += 2 {
		c.set(pmX, y, glyphEquator, colorGrid)
	}

	for _, p := range m.cities {
		x, y := c.project(p.Lat, p.Lon)
		c.set(x, y, glyphCity, colorCity)
	}

	for _, ln := range m.result.Lines {
		if m.filter != allBodies && ln.Body != m.filter {
			continue
		}
		drawLine(c, ln)
	}

	if m.showPlaces {
		for _, rec := range m.result.Recommendations {
			glyph := glyphPlace
			if rec.Fallback {
				glyph = glyphFallback
			}
			x, y := c.project(rec.Coordinates.Lat, rec.Coordinates.Lon)
			c.set(x, y, glyph, colorPlace)
		}
	}

	loc := m.result.BirthData.Location
	bx, by := c.project(loc.Lat, loc.Lon)
	c.set(bx, by, glyphBirth, colorBirth)

	return c.String()
}

// drawLine joins consecutive samples, breaking the curve where it
// crosses the antimeridian.
func drawLine(c *canvas, ln lines.Line) {
	glyph := glyphAscendant
	if ln.Family == lines.Midheaven {
		glyph = glyphMidheaven
	}
	color := lipgloss.Color(ln.Color)

	for i, p := range ln.Coordinates {
		x, y := c.project(p.Lat, p.Lon)
		if i == 0 {
			c.set(x, y, glyph, color)
			continue
		}
		prev := ln.Coordinates[i-1]
		if math.Abs(p.Lon-prev.Lon) > 180 {
			c.set(x, y, glyph, color)
			continue
		}
		px, py := c.project(prev.Lat, prev.Lon)
		c.segment(px, py, x, y, glyph, color)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
