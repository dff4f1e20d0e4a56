// Package ansi provides the ANSI escape codes used for colored CLI output.
// Command output styles through these constants; the TUI uses lipgloss.
package ansi

import "regexp"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

var sgrPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Strip removes SGR sequences from s.
func Strip(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}
