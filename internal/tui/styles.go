package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan: cursor, keys
	colorAccent      = lipgloss.Color("#FFD700") // Gold: selected markers
	colorSuccess     = lipgloss.Color("#00E676") // Green: info messages
	colorDanger      = lipgloss.Color("#FF5252") // Red: errors
	colorMuted       = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorBlue        = lipgloss.Color("#5B8DEF") // Blue: grid ticks
)

// Selection indicator prepended to the active signal row.
const selectionIndicator = "▎"

// Waveform glyphs. One terminal cell is one pixel of the time axis.
const (
	glyphHigh       = '▔'
	glyphLow        = '▁'
	glyphMid        = '─'
	glyphEdge       = '│'
	glyphBus        = '═'
	glyphBusEdge    = '╳'
	glyphCursor     = '┃'
	glyphMarker     = '┊'
	glyphTick       = '┬'
	glyphAxis       = '─'
	glyphMarkerHead = '▼'
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusDelta = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent)

	styleStatusDim = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorMutedLight)
)

// Signal name column styles.
var (
	styleNameSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleNameNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleNameHidden = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	// styleSelectionIndicator styles the left-edge indicator for the selected row.
	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Message line styles.
var (
	styleMessage = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleMessageError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
