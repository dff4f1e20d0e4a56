package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Minimum terminal dimensions for usable rendering.
const (
	MinWidth  = 40
	MinHeight = 10
)

// Layout breakpoints for adaptive rendering.
const (
	// CompactWidth triggers compact mode for the status bar and footer.
	CompactWidth = 60
)

// Fixed rows around the waveform area: status bar, time axis, marker
// labels, message line and the two-line footer.
const (
	headerRows = 3
	chromeRows = headerRows + 1 + 2
)

// TruncateWithEllipsis truncates s to maxLen runes, appending "..." if truncated.
// If maxLen is less than 4, returns s truncated to maxLen runes without ellipsis.
// Returns s unchanged if it fits within maxLen runes.
// Uses rune-aware counting and slicing to avoid splitting multi-byte UTF-8 characters.
func TruncateWithEllipsis(s string, maxLen int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen < 4 {
		if maxLen <= 0 {
			return ""
		}
		return truncateToNRunes(s, maxLen)
	}
	return truncateToNRunes(s, maxLen-3) + "..."
}

// truncateLeft keeps the last maxLen runes of s behind a "..." prefix. Signal
// paths are more recognisable by their leaf than their root.
func truncateLeft(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		if maxLen <= 0 {
			return ""
		}
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

// truncateToNRunes returns the first n runes of s as a string.
func truncateToNRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// truncateToWidth hard-truncates a styled string to maxWidth visible cells,
// passing escape sequences through untouched.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			b.WriteRune(r)
			continue
		}
		if inEscape {
			b.WriteRune(r)
			// ESC sequences end at a letter (A-Z, a-z).
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if width+1 > maxWidth {
			break
		}
		b.WriteRune(r)
		width++
	}
	return b.String()
}

// padToWidth pads a rendered (possibly ANSI-styled) string with spaces to fill
// the given width, then applies a background color across the entire padded row.
func padToWidth(s string, width int, bg lipgloss.Color) string {
	visible := lipgloss.Width(s)
	if visible < width {
		s += strings.Repeat(" ", width-visible)
	}
	return lipgloss.NewStyle().Background(bg).Render(s)
}
