// Package state provides thread-safe state management for the interactive
// viewer.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-astromap/internal/astrocarto"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventChart        EventType = "CHART"
	EventChartFailed  EventType = "CHART_FAILED"
	EventPlaceAdded   EventType = "PLACE_ADDED"
	EventPlaceDropped EventType = "PLACE_DROPPED"
)

// Event records one change between consecutive charts.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Place     string    `json:"place,omitempty"` // birth place for chart events, city otherwise
	Body      string    `json:"body,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// HistoryEntry is one computed chart.
type HistoryEntry struct {
	ComputedAt time.Time
	Result     *astrocarto.Result
}

// Manager handles shared viewer state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	current      *astrocarto.Result
	lastCalc     time.Time
	lastError    error
	calcDuration time.Duration

	history    []HistoryEntry
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory int
	MaxEvents  int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory: 20,
		MaxEvents:  50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &Manager{
		maxHistory: maxHistory,
		maxEvents:  maxEvents,
		events:     make([]Event, 0, maxEvents),
		now:        time.Now,
	}
}

// Update records the outcome of a calculation. A failed calculation keeps
// the previous chart current.
func (m *Manager) Update(res *astrocarto.Result, calcDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.lastCalc = now
	m.lastError = err
	m.calcDuration = calcDuration

	if err != nil {
		m.addEvent(Event{Type: EventChartFailed, Timestamp: now, Detail: err.Error()})
		return
	}
	if res == nil {
		return
	}

	m.addEvent(Event{
		Type:      EventChart,
		Timestamp: now,
		Place:     res.BirthData.Location.Name,
		Detail:    res.BirthData.Date + " " + res.BirthData.Time,
	})
	m.detectEvents(res, now)

	m.current = res
	m.history = append(m.history, HistoryEntry{ComputedAt: now, Result: res})
	if len(m.history) > m.maxHistory {
		m.history = m.history[1:]
	}
}

// detectEvents compares the new chart's recommendations with the current
// chart's.
func (m *Manager) detectEvents(res *astrocarto.Result, now time.Time) {
	if m.current == nil {
		return
	}

	prev := make(map[string]string, len(m.current.Recommendations))
	for _, r := range m.current.Recommendations {
		prev[r.Name] = r.Influence.Body.String()
	}
	next := make(map[string]bool, len(res.Recommendations))

	for _, r := range res.Recommendations {
		next[r.Name] = true
		if _, ok := prev[r.Name]; !ok {
			m.addEvent(Event{
				Type:      EventPlaceAdded,
				Timestamp: now,
				Place:     r.Name,
				Body:      r.Influence.Body.String(),
			})
		}
	}

	for _, r := range m.current.Recommendations {
		if !next[r.Name] {
			m.addEvent(Event{
				Type:      EventPlaceDropped,
				Timestamp: now,
				Place:     r.Name,
				Body:      prev[r.Name],
			})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Result       *astrocarto.Result
	LastCalc     time.Time
	LastError    error
	CalcDuration time.Duration
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Result:       m.current,
		LastCalc:     m.lastCalc,
		LastError:    m.lastError,
		CalcDuration: m.calcDuration,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events. It returns nil when n <= 0.
func (m *Manager) RecentEvents(n int) []Event {
	if n <= 0 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns computed charts, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// HasData returns true if at least one chart has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
