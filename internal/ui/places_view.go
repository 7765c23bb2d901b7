package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/match"
	"github.com/litescript/ls-astromap/internal/report"
	"github.com/litescript/ls-astromap/internal/state"
)

// eventsShown is how many recent events the places view lists.
const eventsShown = 5

type placeItem struct {
	rec match.Recommendation
}

func (p placeItem) Title() string {
	if p.rec.Country == "" {
		return p.rec.Name
	}
	return p.rec.Name + ", " + p.rec.Country
}

func (p placeItem) Description() string {
	desc := fmt.Sprintf("%s · %.0f%%", p.rec.Influence.Label, p.rec.Strength*100)
	if p.rec.LineDistanceKm > 0 {
		desc += fmt.Sprintf(" · %.0f km from line", p.rec.LineDistanceKm)
	}
	return desc
}

func (p placeItem) FilterValue() string { return p.rec.Name }

// PlacesModel lists recommended cities with the body positions and the
// recent change log.
type PlacesModel struct {
	list      list.Model
	positions []ephem.Position
	events    []state.Event
	width     int
	height    int
}

// NewPlacesModel creates an empty places list.
func NewPlacesModel() PlacesModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Recommended places"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return PlacesModel{list: l}
}

// SetSize updates the viewport size.
func (m PlacesModel) SetSize(width, height int) PlacesModel {
	m.width = width
	m.height = height
	m.list.SetSize(width-4, max(4, height-eventsShown-5))
	return m
}

// UpdateData loads the snapshot's recommendations and events.
func (m PlacesModel) UpdateData(snap state.Snapshot) PlacesModel {
	var items []list.Item
	m.positions = nil
	if snap.Result != nil {
		for _, rec := range snap.Result.Recommendations {
			items = append(items, placeItem{rec: rec})
		}
		m.positions = snap.Result.Positions
	}
	m.list.SetItems(items)
	m.events = snap.Events
	return m
}

// Selected returns the highlighted recommendation.
func (m PlacesModel) Selected() (match.Recommendation, bool) {
	it, ok := m.list.SelectedItem().(placeItem)
	if !ok {
		return match.Recommendation{}, false
	}
	return it.rec, true
}

// Filtering reports whether the list is capturing keys for its filter.
func (m PlacesModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Update handles messages.
func (m PlacesModel) Update(msg tea.Msg) (PlacesModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, the selected card and recent events.
func (m PlacesModel) View() string {
	if len(m.list.Items()) == 0 {
		return dimStyle.Render("  No recommendations yet.")
	}

	var b strings.Builder
	b.WriteString(m.renderPositions())
	b.WriteString("\n")
	b.WriteString(m.list.View())

	if rec, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(rec.Description + "\n" +
			dimStyle.Render("Themes: "+strings.Join(rec.Themes, ", "))))
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent changes"))
		start := max(0, len(m.events)-eventsShown)
		for _, e := range m.events[start:] {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %-13s %s", e.Timestamp.Format("15:04:05"), e.Type, eventText(e))))
		}
	}
	return b.String()
}

// renderPositions lays the bodies out in two rows of sign and degree.
func (m PlacesModel) renderPositions() string {
	var names, signs []string
	for _, p := range m.positions {
		sign, deg := report.Sign(p.Longitude)
		cell := fmt.Sprintf("%s %4.1f°", sign, deg)
		w := max(len([]rune(cell)), len(p.Body.String())) + 2
		style := lipgloss.NewStyle().Width(w)
		names = append(names, style.Foreground(lipgloss.Color(p.Body.Color())).Render(p.Body.String()))
		signs = append(signs, style.Inherit(dimStyle).Render(cell))
	}
	return "  " + strings.Join(names, "") + "\n  " + strings.Join(signs, "")
}

func eventText(e state.Event) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{e.Place, e.Body, e.Detail} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}
