// Package trace holds the in-memory model of a parsed value-change dump:
// signals and their change histories, user markers, the time cursor and the
// display ordering of signals.
//
// A Trace has exactly one owner at a time. It is built by the parser, then
// handed to the viewer, which mutates it only through the methods below.
// Nothing in this package is safe for concurrent use.
package trace

import (
	"sort"
	"strings"
)

// TimeBaseAuto selects the display unit automatically from the magnitude of
// each value.
const TimeBaseAuto = "auto"

// Trace is the aggregate root of a loaded VCD file.
type Trace struct {
	Timescale    string
	TimeBase     string
	MaxTimestamp int64
	Cursor       Cursor

	signals      map[string]*Signal
	markers      []*Marker
	displayOrder []string
}

// New returns an empty trace with the conventional 1ns timescale and a
// visible cursor at time zero.
func New() *Trace {
	return &Trace{
		Timescale: "1ns",
		TimeBase:  TimeBaseAuto,
		Cursor:    Cursor{Visible: true},
		signals:   make(map[string]*Signal),
	}
}

// AddSignal registers s under its identifier. A signal already registered
// with the same identifier is silently replaced.
func (tr *Trace) AddSignal(s *Signal) {
	tr.signals[s.Identifier] = s
}

// SignalByIdentifier returns the signal declared with the given VCD
// identifier, or nil.
func (tr *Trace) SignalByIdentifier(id string) *Signal {
	return tr.signals[id]
}

// SignalByName looks a signal up by full name first and bare name second.
// Among several bare-name matches the canonically first one wins.
func (tr *Trace) SignalByName(name string) *Signal {
	var bare *Signal
	for _, s := range tr.AllSignals() {
		if s.FullName() == name {
			return s
		}
		if bare == nil && s.Name == name {
			bare = s
		}
	}
	return bare
}

// SignalCount returns the number of distinct identifiers.
func (tr *Trace) SignalCount() int {
	return len(tr.signals)
}

// AllSignals returns every signal in canonical order: ascending by scope,
// then by name. Identifier breaks remaining ties so the order is total.
func (tr *Trace) AllSignals() []*Signal {
	out := make([]*Signal, 0, len(tr.signals))
	for _, s := range tr.signals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Identifier < b.Identifier
	})
	return out
}

// SetDisplayOrder replaces the user display order. Names are full names;
// unknown names are kept but ignored when listing.
func (tr *Trace) SetDisplayOrder(fullNames []string) {
	tr.displayOrder = append([]string(nil), fullNames...)
}

// DisplayOrder returns the full names of the live signals in display order.
func (tr *Trace) DisplayOrder() []string {
	sigs := tr.SignalsInDisplayOrder()
	out := make([]string, len(sigs))
	for i, s := range sigs {
		out[i] = s.FullName()
	}
	return out
}

// SignalsInDisplayOrder lists live signals following the user display order.
// Entries naming no live signal are skipped; live signals missing from the
// order are appended in canonical order. When two signals share a full name
// only the canonically first one is placed by the order.
func (tr *Trace) SignalsInDisplayOrder() []*Signal {
	all := tr.AllSignals()
	byName := make(map[string]*Signal, len(all))
	for _, s := range all {
		if _, dup := byName[s.FullName()]; !dup {
			byName[s.FullName()] = s
		}
	}

	out := make([]*Signal, 0, len(all))
	placed := make(map[*Signal]bool, len(all))
	for _, name := range tr.displayOrder {
		s, ok := byName[name]
		if !ok || placed[s] {
			continue
		}
		out = append(out, s)
		placed[s] = true
	}
	for _, s := range all {
		if !placed[s] {
			out = append(out, s)
		}
	}
	return out
}

// MoveSignal shifts the named signal by delta positions in the display
// order, clamping at both ends. It reports whether the order changed.
func (tr *Trace) MoveSignal(fullName string, delta int) bool {
	order := tr.DisplayOrder()
	from := -1
	for i, n := range order {
		if n == fullName {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(order)-1 {
		to = len(order) - 1
	}
	if to == from {
		return false
	}
	name := order[from]
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]string{name}, order[to:]...)...)
	tr.displayOrder = order
	return true
}

// Scopes returns the distinct non-empty scopes, sorted.
func (tr *Trace) Scopes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range tr.signals {
		if s.Scope != "" && !seen[s.Scope] {
			seen[s.Scope] = true
			out = append(out, s.Scope)
		}
	}
	sort.Strings(out)
	return out
}

// SignalsInScope returns the signals declared directly in scope, in
// canonical order.
func (tr *Trace) SignalsInScope(scope string) []*Signal {
	var out []*Signal
	for _, s := range tr.AllSignals() {
		if s.Scope == scope {
			out = append(out, s)
		}
	}
	return out
}

// UpdateMaxTimestamp raises MaxTimestamp to t if t is larger.
func (tr *Trace) UpdateMaxTimestamp(t int64) {
	if t > tr.MaxTimestamp {
		tr.MaxTimestamp = t
	}
}

// AllEdges returns the sorted, de-duplicated set of change timestamps of
// all visible signals. It is recomputed on every call since visibility and
// changes can mutate between calls.
func (tr *Trace) AllEdges() []int64 {
	var edges []int64
	for _, s := range tr.signals {
		if !s.Visible {
			continue
		}
		for _, c := range s.Changes {
			edges = append(edges, c.Time)
		}
	}
	if len(edges) == 0 {
		return nil
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	out := edges[:1]
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// ValueAt returns the change of s in effect at time t, or false if t
// precedes the first change.
func (tr *Trace) ValueAt(s *Signal, t int64) (Change, bool) {
	if s == nil {
		return Change{}, false
	}
	return s.ValueAt(t)
}

// Markers returns the marker list in ascending time order. The slice is
// shared; callers must not reorder it.
func (tr *Trace) Markers() []*Marker {
	return tr.markers
}

// AddMarker inserts m and restores time ordering.
func (tr *Trace) AddMarker(m *Marker) {
	tr.markers = append(tr.markers, m)
	sortMarkers(tr.markers)
}

// RemoveMarker deletes m from the list. It reports whether m was present.
func (tr *Trace) RemoveMarker(m *Marker) bool {
	for i, have := range tr.markers {
		if have == m {
			tr.markers = append(tr.markers[:i], tr.markers[i+1:]...)
			return true
		}
	}
	return false
}

// ClearMarkers removes every marker.
func (tr *Trace) ClearMarkers() {
	tr.markers = nil
}

// SetMarkerTime moves m to t and restores time ordering.
func (tr *Trace) SetMarkerTime(m *Marker, t int64) {
	m.Time = t
	sortMarkers(tr.markers)
}

// SortMarkers re-establishes time ordering after markers were mutated in
// place.
func (tr *Trace) SortMarkers() {
	sortMarkers(tr.markers)
}

// SelectedMarkers returns the selected markers in list order.
func (tr *Trace) SelectedMarkers() []*Marker {
	var out []*Marker
	for _, m := range tr.markers {
		if m.Selected {
			out = append(out, m)
		}
	}
	return out
}

// Stats summarises the size of a trace.
type Stats struct {
	Signals int
	Scopes  int
	Changes int
	Markers int
}

// Stats counts signals, scopes, recorded changes and markers.
func (tr *Trace) Stats() Stats {
	st := Stats{
		Signals: len(tr.signals),
		Scopes:  len(tr.Scopes()),
		Markers: len(tr.markers),
	}
	for _, s := range tr.signals {
		st.Changes += len(s.Changes)
	}
	return st
}

// ScopeDepth returns the nesting depth of a dotted scope path.
func ScopeDepth(scope string) int {
	if scope == "" {
		return 0
	}
	return strings.Count(scope, ".") + 1
}
