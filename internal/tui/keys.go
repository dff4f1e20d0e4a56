package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the viewer.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	Fit           key.Binding
	TimeBase      key.Binding
	Toggle        key.Binding
	MoveUp        key.Binding
	MoveDown      key.Binding
	AddMarker     key.Binding
	DeleteMarkers key.Binding
	PrevEdge      key.Binding
	NextEdge      key.Binding
	Reload        key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Fit: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "fit"),
		),
		TimeBase: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "time base"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "show/hide"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down"),
		),
		AddMarker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "marker"),
		),
		DeleteMarkers: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		PrevEdge: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev edge"),
		),
		NextEdge: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next edge"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
