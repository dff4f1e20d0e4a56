// Package ui prints human-readable command output to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/vcdscope/internal/ansi"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/vcd"
)

// Printer writes styled output to w.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ "+ansi.Reset+"%s\n", msg)
}

// TraceInfoData is everything the info command reports about one file.
type TraceInfoData struct {
	Path        string
	Size        int64
	ModTime     time.Time
	Trace       *trace.Trace
	View        *timeview.View
	Diagnostics int
}

// TraceInfo prints a summary of a parsed trace followed by its scope tree.
func (p *Printer) TraceInfo(d TraceInfoData) {
	tr := d.Trace
	st := tr.Stats()

	fmt.Fprintf(p.w, ansi.Bold+ansi.Cyan+"%s"+ansi.Reset+ansi.Dim+" (%s, modified %s)"+ansi.Reset+"\n",
		d.Path, humanize.IBytes(uint64(max(d.Size, 0))), humanize.Time(d.ModTime))
	fmt.Fprintf(p.w, "  timescale:   %s\n", tr.Timescale)
	fmt.Fprintf(p.w, "  end time:    %s "+ansi.Dim+"(%s ticks)"+ansi.Reset+"\n",
		d.View.FormatPreciseLabel(float64(tr.MaxTimestamp)), humanize.Comma(tr.MaxTimestamp))
	fmt.Fprintf(p.w, "  signals:     %s\n", humanize.Comma(int64(st.Signals)))
	fmt.Fprintf(p.w, "  changes:     %s\n", humanize.Comma(int64(st.Changes)))
	fmt.Fprintf(p.w, "  scopes:      %s\n", humanize.Comma(int64(st.Scopes)))
	if d.Diagnostics > 0 {
		fmt.Fprintf(p.w, "  "+ansi.Yellow+"skipped:     %s line(s)"+ansi.Reset+"\n", humanize.Comma(int64(d.Diagnostics)))
	}

	scopes := tr.Scopes()
	if len(tr.SignalsInScope("")) > 0 {
		scopes = append([]string{""}, scopes...)
	}
	for _, scope := range scopes {
		depth := trace.ScopeDepth(scope)
		indent := strings.Repeat("  ", max(depth, 1))
		if scope != "" {
			name := scope[strings.LastIndex(scope, ".")+1:]
			fmt.Fprintf(p.w, "%s"+ansi.Blue+"%s"+ansi.Reset+"\n", strings.Repeat("  ", depth-1), name)
		}
		for _, s := range tr.SignalsInScope(scope) {
			width := ""
			if s.Width > 1 {
				width = fmt.Sprintf(ansi.Dim+" [%d:0]"+ansi.Reset, s.Width-1)
			}
			fmt.Fprintf(p.w, "%s%s%s "+ansi.Dim+"(%s, %s changes)"+ansi.Reset+"\n",
				indent, s.Name, width, s.Identifier, humanize.Comma(int64(len(s.Changes))))
		}
	}
}

// Diagnostics lists every line the parser skipped.
func (p *Printer) Diagnostics(ds []vcd.Diagnostic) {
	if len(ds) == 0 {
		fmt.Fprintln(p.w, ansi.Green+"no parse diagnostics"+ansi.Reset)
		return
	}
	fmt.Fprintf(p.w, ansi.Yellow+ansi.Bold+"%d diagnostic(s):"+ansi.Reset+"\n", len(ds))
	for _, d := range ds {
		fmt.Fprintf(p.w, "  "+ansi.Yellow+"• "+ansi.Reset+"%s\n", d)
	}
}

// ValueRow is one line of the values command.
type ValueRow struct {
	Name  string
	Value string
	Since string // label of the change time, empty before the first change
}

// Values prints signal values at one instant in aligned columns.
func (p *Printer) Values(at string, rows []ValueRow) {
	fmt.Fprintf(p.w, ansi.Bold+"values at %s"+ansi.Reset+"\n", at)
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Name))
	}
	for _, r := range rows {
		if r.Since == "" {
			fmt.Fprintf(p.w, "  %-*s  "+ansi.Dim+"-"+ansi.Reset+"\n", width, r.Name)
			continue
		}
		fmt.Fprintf(p.w, "  %-*s  "+ansi.Green+"%s"+ansi.Reset+ansi.Dim+"  since %s"+ansi.Reset+"\n", width, r.Name, r.Value, r.Since)
	}
}

// Markers prints a marker table with times formatted by v.
func (p *Printer) Markers(markers []*trace.Marker, v *timeview.View) {
	if len(markers) == 0 {
		fmt.Fprintln(p.w, ansi.Dim+"(no markers)"+ansi.Reset)
		return
	}
	for _, m := range markers {
		fmt.Fprintf(p.w, "  "+ansi.Magenta+"▏"+ansi.Reset+"%-8s %s "+ansi.Dim+"%s"+ansi.Reset+"\n",
			m.Label, v.FormatPreciseLabel(float64(m.Time)), m.ID)
	}
}
