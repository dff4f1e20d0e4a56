package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFooterView(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	t.Run("wide shows descriptions", func(t *testing.T) {
		t.Parallel()
		view := Footer{Width: 200, Bindings: ViewerFooterBindings(km)}.View()
		for _, want := range []string{"+:zoom in", "m:marker", "]:next edge", "q:quit"} {
			if !strings.Contains(view, want) {
				t.Errorf("footer missing %q: %s", want, view)
			}
		}
	})

	t.Run("compact shows keys only", func(t *testing.T) {
		t.Parallel()
		view := Footer{Width: CompactWidth - 1, Bindings: EmptyFooterBindings(km)}.View()
		if strings.Contains(view, "quit") {
			t.Errorf("compact footer should omit descriptions: %s", view)
		}
		if !strings.Contains(view, "r q") {
			t.Errorf("compact footer = %s", view)
		}
	})

	t.Run("disabled bindings hidden", func(t *testing.T) {
		t.Parallel()
		k := DefaultKeyMap()
		k.Reload.SetEnabled(false)
		view := Footer{Width: 100, Bindings: EmptyFooterBindings(k)}.View()
		if strings.Contains(view, "reload") {
			t.Errorf("disabled binding rendered: %s", view)
		}
	})

	t.Run("never wider than the terminal", func(t *testing.T) {
		t.Parallel()
		view := Footer{Width: 70, Bindings: ViewerFooterBindings(km)}.View()
		for _, line := range strings.Split(view, "\n") {
			if w := lipgloss.Width(line); w > 70 {
				t.Errorf("footer line is %d cells wide", w)
			}
		}
		if n := strings.Count(view, "\n"); n != 1 {
			t.Errorf("footer should be border plus one line, got %d newlines", n)
		}
	})
}
