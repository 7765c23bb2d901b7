package match

// AllowList is a named, versioned set of city names eligible for line
// matches. Names are compared exactly.
type AllowList struct {
	name  string
	names map[string]struct{}
	order []string
}

// NewAllowList builds an allow list. Duplicate names are ignored.
func NewAllowList(name string, cities ...string) *AllowList {
	l := &AllowList{
		name:  name,
		names: make(map[string]struct{}, len(cities)),
	}
	for _, c := range cities {
		if _, dup := l.names[c]; dup {
			continue
		}
		l.names[c] = struct{}{}
		l.order = append(l.order, c)
	}
	return l
}

// Name returns the list's identifier, e.g. "major-cities/v1".
func (l *AllowList) Name() string { return l.name }

// Len returns the number of names.
func (l *AllowList) Len() int { return len(l.order) }

// Names returns the names in declaration order.
func (l *AllowList) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Contains reports whether name is on the list.
func (l *AllowList) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

// MajorCitiesV1 is the curated set of globally recognizable cities used by
// DefaultConfig. Edits go into a new version rather than this one.
var MajorCitiesV1 = NewAllowList("major-cities/v1",
	"New York", "London", "Paris", "Tokyo", "Sydney",
	"Los Angeles", "Mumbai", "São Paulo", "Cairo", "Bangkok",
	"Singapore", "Hong Kong", "Dubai", "Rome", "Barcelona",
	"Madrid", "Berlin", "Amsterdam", "Vienna", "Prague",
	"Istanbul", "Moscow", "Beijing", "Shanghai", "Seoul",
	"Delhi", "Jakarta", "Manila", "Kuala Lumpur", "Melbourne",
	"Auckland", "Toronto", "Vancouver", "Chicago", "San Francisco",
	"Miami", "Mexico City", "Buenos Aires", "Rio de Janeiro", "Lima",
	"Bogotá", "Cape Town", "Nairobi", "Lagos", "Athens",
	"Lisbon", "Stockholm", "Dublin", "Zurich", "Honolulu",
)
