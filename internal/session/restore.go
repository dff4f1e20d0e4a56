package session

import (
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// Capture snapshots the persistable state of tr.
func Capture(tr *trace.Trace) State {
	st := State{
		TimeBase: tr.TimeBase,
		Cursor:   tr.Cursor.Time,
		Markers:  MarkerRecords(tr.Markers()),
	}
	for _, s := range tr.SignalsInDisplayOrder() {
		st.Signals = append(st.Signals, SignalPref{Name: s.FullName(), Visible: s.Visible, Color: s.Color})
	}
	return st
}

// MarkerRecords converts markers to their stored form.
func MarkerRecords(ms []*trace.Marker) []MarkerRecord {
	out := make([]MarkerRecord, 0, len(ms))
	for _, m := range ms {
		out = append(out, MarkerRecord{ID: m.ID, Time: m.Time, Label: m.Label, Color: m.Color, Selected: m.Selected})
	}
	return out
}

// Restore applies st to a freshly parsed trace. Preferences for signals the
// trace no longer has are ignored, and marker and cursor times beyond the
// end of the trace are clamped to it.
func Restore(tr *trace.Trace, st State) {
	if st.TimeBase != "" {
		tr.TimeBase = st.TimeBase
	}
	tr.Cursor.Time = clampTime(st.Cursor, tr.MaxTimestamp)

	order := make([]string, 0, len(st.Signals))
	for _, p := range st.Signals {
		order = append(order, p.Name)
		if s := tr.SignalByName(p.Name); s != nil && s.FullName() == p.Name {
			s.Visible = p.Visible
			if p.Color != "" {
				s.Color = p.Color
			}
		}
	}
	if len(order) > 0 {
		tr.SetDisplayOrder(order)
	}

	tr.ClearMarkers()
	for _, r := range st.Markers {
		tr.AddMarker(RestoreMarker(r, tr.MaxTimestamp))
	}
}

// RestoreMarker rebuilds a marker from its record, keeping its ID and
// clamping its time to [0, maxTime].
func RestoreMarker(r MarkerRecord, maxTime int64) *trace.Marker {
	m := trace.NewMarker(clampTime(r.Time, maxTime), r.Label, r.Color)
	if r.ID != "" {
		m.ID = r.ID
	}
	m.Selected = r.Selected
	return m
}

func clampTime(t, maxTime int64) int64 {
	return max(0, min(t, maxTime))
}
