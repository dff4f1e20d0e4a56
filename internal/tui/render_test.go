package tui

import (
	"strings"
	"testing"
)

func TestViewTooSmall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		width, height int
		tooSmall      bool
	}{
		{"narrow", MinWidth - 1, 24, true},
		{"short", 80, MinHeight - 1, true},
		{"both", MinWidth - 1, MinHeight - 1, true},
		{"exact minimum", MinWidth, MinHeight, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewAppModel(Options{Path: "/x.vcd", Margin: 10})
			m.Width, m.Height = tt.width, tt.height

			view := m.View()
			if got := strings.Contains(view, "Terminal too small"); got != tt.tooSmall {
				t.Errorf("too small = %v, want %v; view: %q", got, tt.tooSmall, view)
			}
			if tt.tooSmall && !strings.Contains(view, "Minimum:") {
				t.Error("expected minimum dimensions in message")
			}
		})
	}
}

func TestViewRendersTrace(t *testing.T) {
	t.Parallel()
	m := newLoadedModel(t, Options{})
	m = update(t, m, keyMsg("m"))

	view := m.View()
	for _, want := range []string{"counter.vcd", "top.clk", "top.data", "0xB0", "10ns", "M1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := strings.Count(view, "\n") + 1; got != m.Height {
		t.Errorf("view has %d lines, want %d", got, m.Height)
	}
}
