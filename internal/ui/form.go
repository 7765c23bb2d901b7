package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
)

const (
	fieldDate = iota
	fieldTime
	fieldPlace
	numFields
)

// Suggestions appear once the place field holds this many characters.
const (
	minSuggestChars = 2
	maxSuggestions  = 5
)

// submitMsg asks the root model to compute a chart.
type submitMsg struct {
	Birth astrocarto.BirthData
}

// FormModel collects birth date, time and place.
type FormModel struct {
	inputs   [numFields]textinput.Model
	focus    int
	searcher Searcher

	suggestions []gazetteer.City
	selected    int // index into suggestions, -1 for none
	err         error
	width       int
}

// NewFormModel creates the input form.
func NewFormModel(searcher Searcher) FormModel {
	m := FormModel{searcher: searcher, selected: -1}

	placeholders := [numFields]string{"2024-03-20", "12:00", "Bali"}
	prompts := [numFields]string{"Date  ", "Time  ", "Place "}
	limits := [numFields]int{10, 8, 64}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = prompts[i]
		ti.CharLimit = limits[i]
		m.inputs[i] = ti
	}
	m.inputs[fieldDate].Focus()
	return m
}

// SetSize updates the form width.
func (m FormModel) SetSize(width int) FormModel {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(10, width-12)
	}
	return m
}

// SetValues fills the three fields.
func (m FormModel) SetValues(date, clock, place string) FormModel {
	m.inputs[fieldDate].SetValue(date)
	m.inputs[fieldTime].SetValue(clock)
	m.inputs[fieldPlace].SetValue(place)
	m.refreshSuggestions()
	return m
}

// Focused returns the index of the focused field.
func (m FormModel) Focused() int {
	return m.focus
}

// Suggestions returns the current place suggestions.
func (m FormModel) Suggestions() []gazetteer.City {
	return m.suggestions
}

// SetError shows err under the form.
func (m FormModel) SetError(err error) FormModel {
	m.err = err
	return m
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "shift+tab":
			return m.moveFocus(-1), nil
		case "down":
			return m.moveFocus(1), nil
		case "ctrl+n":
			m.cycleSuggestion(1)
			return m, nil
		case "ctrl+p":
			m.cycleSuggestion(-1)
			return m, nil
		case "enter":
			if m.focus < fieldPlace {
				return m.moveFocus(1), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	before := m.inputs[fieldPlace].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == fieldPlace && m.inputs[fieldPlace].Value() != before {
		m.refreshSuggestions()
	}
	return m, cmd
}

func (m FormModel) moveFocus(delta int) FormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + numFields) % numFields
	m.inputs[m.focus].Focus()
	return m
}

func (m *FormModel) cycleSuggestion(delta int) {
	n := len(m.suggestions)
	if n == 0 {
		m.selected = -1
		return
	}
	m.selected = (m.selected + delta + n) % n
}

func (m *FormModel) refreshSuggestions() {
	m.selected = -1
	q := strings.TrimSpace(m.inputs[fieldPlace].Value())
	if m.searcher == nil || len([]rune(q)) < minSuggestChars {
		m.suggestions = nil
		return
	}
	m.suggestions = m.searcher.Search(q, maxSuggestions)
}

// resolvePlace picks the highlighted suggestion, an exact gazetteer
// match, or the single suggestion left.
func (m FormModel) resolvePlace() (gazetteer.City, error) {
	if m.selected >= 0 && m.selected < len(m.suggestions) {
		return m.suggestions[m.selected], nil
	}
	name := strings.TrimSpace(m.inputs[fieldPlace].Value())
	if name == "" {
		return gazetteer.City{}, errors.New("place is required")
	}
	if m.searcher != nil {
		if c, ok := m.searcher.Lookup(name); ok {
			return c, nil
		}
	}
	if len(m.suggestions) == 1 {
		return m.suggestions[0], nil
	}
	return gazetteer.City{}, fmt.Errorf("unknown place %q", name)
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	city, err := m.resolvePlace()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	birth := astrocarto.BirthData{
		Date: strings.TrimSpace(m.inputs[fieldDate].Value()),
		Time: strings.TrimSpace(m.inputs[fieldTime].Value()),
		Location: astrocarto.Location{
			Name:     city.Name,
			Lat:      city.Lat,
			Lon:      city.Lon,
			Timezone: city.TZ,
		},
	}
	return m, func() tea.Msg { return submitMsg{Birth: birth} }
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Birth data"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString("  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if len(m.suggestions) > 0 {
		b.WriteString("\n")
		for i, c := range m.suggestions {
			line := fmt.Sprintf("%s  (%.2f, %.2f)", c.Label(), c.Lat, c.Lon)
			if i == m.selected {
				b.WriteString(accentStyle.Render("  ▶ " + line))
			} else {
				b.WriteString(dimStyle.Render("    " + line))
			}
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
