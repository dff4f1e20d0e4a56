package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Footer renders keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		var part string
		if compact {
			part = styleFooterKey.Render(help.Key)
		} else {
			part = styleFooterKey.Render(help.Key) + styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	if f.Width > 0 && lipgloss.Width(line) > f.Width {
		line = truncateToWidth(line, f.Width)
	}
	return styleFooter.Width(f.Width).Render(line)
}

// ViewerFooterBindings returns footer bindings while a trace is shown.
func ViewerFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{
		km.ZoomIn, km.ZoomOut, km.Fit, km.TimeBase, km.Toggle, km.MoveUp, km.MoveDown,
		km.AddMarker, km.DeleteMarkers, km.PrevEdge, km.NextEdge, km.Reload, km.Quit,
	}
}

// EmptyFooterBindings returns footer bindings before any trace has loaded.
func EmptyFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Reload, km.Quit}
}
