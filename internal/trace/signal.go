package trace

import "sort"

// DefaultSignalColor is the display color assigned to newly created signals.
const DefaultSignalColor = "#00E676"

// Change is a single value-change record: the value a signal takes from
// Time onwards.
type Change struct {
	Time  int64
	Value string
}

// Signal is one declared variable of a trace together with its value history.
type Signal struct {
	Identifier string
	Name       string
	Scope      string // dotted hierarchical path, may be empty
	Width      int
	Changes    []Change
	Visible    bool
	Color      string
}

// NewSignal creates a visible signal with the default color and no changes.
func NewSignal(identifier, name, scope string, width int) *Signal {
	if width < 1 {
		width = 1
	}
	return &Signal{
		Identifier: identifier,
		Name:       name,
		Scope:      scope,
		Width:      width,
		Visible:    true,
		Color:      DefaultSignalColor,
	}
}

// FullName returns scope + "." + name, or just the name for unscoped signals.
func (s *Signal) FullName() string {
	if s.Scope == "" {
		return s.Name
	}
	return s.Scope + "." + s.Name
}

// AddChange records a value change. Changes arriving in timestamp order are
// appended; an out-of-order change is inserted after every change at or
// before its timestamp so Changes stays non-decreasing and ties keep their
// insertion order.
func (s *Signal) AddChange(t int64, value string) {
	n := len(s.Changes)
	if n == 0 || s.Changes[n-1].Time <= t {
		s.Changes = append(s.Changes, Change{Time: t, Value: value})
		return
	}
	i := sort.Search(n, func(i int) bool { return s.Changes[i].Time > t })
	s.Changes = append(s.Changes, Change{})
	copy(s.Changes[i+1:], s.Changes[i:])
	s.Changes[i] = Change{Time: t, Value: value}
}

// IndexAt returns the index of the latest change with Time <= t, or -1 when
// t precedes the first change. For t1 < t2, IndexAt(t1) <= IndexAt(t2).
func (s *Signal) IndexAt(t int64) int {
	return sort.Search(len(s.Changes), func(i int) bool { return s.Changes[i].Time > t }) - 1
}

// ValueAt returns the change in effect at time t.
func (s *Signal) ValueAt(t int64) (Change, bool) {
	i := s.IndexAt(t)
	if i < 0 {
		return Change{}, false
	}
	return s.Changes[i], true
}

// IsScalar reports whether the signal is a single bit wide.
func (s *Signal) IsScalar() bool {
	return s.Width == 1
}
