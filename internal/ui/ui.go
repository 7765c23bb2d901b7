// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/state"
	"github.com/litescript/ls-astromap/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewForm ViewMode = iota
	ViewMap
	ViewPlaces

	numViews
)

// Charter computes charts.
type Charter interface {
	Calculate(b astrocarto.BirthData) (*astrocarto.Result, error)
}

// Searcher looks up places for the form and supplies the map's city dots.
type Searcher interface {
	All() []gazetteer.City
	Search(query string, limit int) []gazetteer.City
	Lookup(name string) (gazetteer.City, bool)
}

// ChartMsg carries a finished calculation.
type ChartMsg struct {
	Result   *astrocarto.Result
	Duration time.Duration
	Err      error
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state   *state.Manager
	charter Charter

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	computing bool

	// Sub-models
	form    FormModel
	mapView MapModel
	places  PlacesModel

	snapshot state.Snapshot
}

// New creates a new root UI model. A manager that already holds a chart
// opens on the map.
func New(stateMgr *state.Manager, charter Charter, searcher Searcher) Model {
	m := Model{
		state:    stateMgr,
		charter:  charter,
		viewMode: ViewForm,
		form:     NewFormModel(searcher),
		mapView:  NewMapModel(),
		places:   NewPlacesModel(),
	}
	if searcher != nil {
		m.mapView = m.mapView.SetCities(searcher.All())
	}
	if stateMgr.HasData() {
		m = m.applySnapshot(stateMgr.Snapshot())
		m.viewMode = ViewMap
	}
	return m
}

// Prefill sets the form fields.
func (m Model) Prefill(date, clock, place string) Model {
	m.form = m.form.SetValues(date, clock, place)
	return m
}

// ViewMode returns the active view.
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// Run starts the program on the alternate screen.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.viewMode = (m.viewMode + 1) % numViews
			return m, nil
		}

		// Plain keys belong to the text inputs on the form and to the
		// list filter while it is open.
		if m.viewMode != ViewForm && !m.places.Filtering() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.viewMode = ViewForm
				return m, nil
			case "2":
				m.viewMode = ViewMap
				return m, nil
			case "3":
				m.viewMode = ViewPlaces
				return m, nil
			}
		}
		return m, m.updateActiveView(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 3 lines, footer 2.
		contentHeight := msg.Height - 5
		m.form = m.form.SetSize(msg.Width)
		m.mapView = m.mapView.SetSize(msg.Width, contentHeight)
		m.places = m.places.SetSize(msg.Width, contentHeight)
		return m, nil

	case submitMsg:
		m.computing = true
		return m, calculateCmd(m.charter, msg.Birth)

	case ChartMsg:
		m.computing = false
		m.state.Update(msg.Result, msg.Duration, msg.Err)
		m = m.applySnapshot(m.state.Snapshot())
		if msg.Err != nil {
			m.form = m.form.SetError(msg.Err)
			m.viewMode = ViewForm
			return m, nil
		}
		m.form = m.form.SetError(nil)
		m.viewMode = ViewMap
		return m, nil
	}

	return m, m.updateActiveView(msg)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.mapView = m.mapView.SetResult(snap.Result)
	m.places = m.places.UpdateData(snap)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewMap:
		m.mapView, cmd = m.mapView.Update(msg)
	case ViewPlaces:
		m.places, cmd = m.places.Update(msg)
	}
	return cmd
}

func calculateCmd(charter Charter, birth astrocarto.BirthData) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := charter.Calculate(birth)
		return ChartMsg{Result: res, Duration: time.Since(start), Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewForm:
		content = m.form.View()
	case ViewMap:
		content = m.mapView.View()
	case ViewPlaces:
		content = m.places.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("  ")
	title := []rune("ls-astromap")
	for i, r := range title {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(i, len(title))))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s · astrocartography", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color along a blue to magenta ramp.
func gradientColor(col, width int) string {
	t := 0.0
	if width > 1 {
		t = float64(col) / float64(width-1)
	}
	// #3B82F6 -> #D946EF
	r := 59 + t*(217-59)
	g := 130 + t*(70-130)
	bl := 246 + t*(239-246)
	return fmt.Sprintf("#%02X%02X%02X", int(r), int(g), int(bl))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Birth", "[2] Map", "[3] Places"}

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.computing:
		status = accentStyle.Render("Computing chart...")
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastCalc.IsZero():
		status = dimStyle.Render(fmt.Sprintf("computed %s (%s)",
			m.snapshot.LastCalc.Format("15:04:05"),
			m.snapshot.CalcDuration.Round(time.Microsecond)))
	default:
		status = dimStyle.Render("Waiting for birth data")
	}

	var help string
	switch m.viewMode {
	case ViewForm:
		help = "↑↓: field | ctrl+n/p: suggestion | enter: compute | tab: view | ctrl+c: quit"
	case ViewMap:
		help = "b/B: body filter | a: all | p: places | tab/1-3: view | q: quit"
	case ViewPlaces:
		help = "↑↓: select | /: filter | tab/1-3: view | q: quit"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}
