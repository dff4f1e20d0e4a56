package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/vcdscope/internal/ansi"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/vcd"
)

func newTestTrace() *trace.Trace {
	tr := trace.New()
	clk := trace.NewSignal("!", "clk", "top", 1)
	clk.AddChange(0, "0")
	clk.AddChange(5, "1")
	data := trace.NewSignal("\"", "data", "top.core", 4)
	data.AddChange(0, "0000")
	rst := trace.NewSignal("#", "rst", "", 1)
	tr.AddSignal(clk)
	tr.AddSignal(data)
	tr.AddSignal(rst)
	tr.UpdateMaxTimestamp(12000)
	return tr
}

func assertContains(t *testing.T, output string, checks ...string) {
	t.Helper()
	for _, c := range checks {
		if !strings.Contains(output, c) {
			t.Errorf("expected output to contain %q, got:\n%s", c, output)
		}
	}
}

func TestTraceInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewWriter(&buf)

	p.TraceInfo(TraceInfoData{
		Path:        "counter.vcd",
		Size:        2048,
		ModTime:     time.Now().Add(-3 * time.Hour),
		Trace:       newTestTrace(),
		View:        timeview.New(0, 0),
		Diagnostics: 2,
	})

	out := buf.String()
	assertContains(t, out,
		"counter.vcd",
		"2.0 KiB",
		"3 hours ago",
		"timescale:   1ns",
		"end time:    12us",
		"12,000 ticks",
		"signals:     3",
		"changes:     3",
		"skipped:     2 line(s)",
		"core",
		"data"+ansi.Dim+" [3:0]",
		"clk "+ansi.Dim+"(!, 2 changes)",
		"rst "+ansi.Dim+"(#, 0 changes)",
	)

	// Root-level signals print before any scope, nested scopes indent deeper.
	if strings.Index(out, "rst") > strings.Index(out, "clk") {
		t.Errorf("root signals should come first:\n%s", out)
	}
	if !strings.Contains(out, "\n  "+ansi.Blue+"core") {
		t.Errorf("nested scope should be indented one level:\n%s", out)
	}
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewWriter(&buf).Diagnostics(nil)
	assertContains(t, buf.String(), "no parse diagnostics")

	buf.Reset()
	NewWriter(&buf).Diagnostics([]vcd.Diagnostic{
		{Line: 7, Kind: vcd.ErrUnknownIdentifier, Text: "1?"},
	})
	assertContains(t, buf.String(), "1 diagnostic(s)", "line 7: unknown identifier: 1?")
}

func TestValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	NewWriter(&buf).Values("5ns", []ValueRow{
		{Name: "top.clk", Value: "1", Since: "5ns"},
		{Name: "rst", Since: ""},
	})
	out := buf.String()
	assertContains(t, out, "values at 5ns", "top.clk", "since 5ns")
	if !strings.Contains(out, "rst    ") {
		t.Errorf("names should be padded to a common width:\n%s", out)
	}
}

func TestMarkers(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	v := timeview.New(0, 0)

	NewWriter(&buf).Markers(nil, v)
	assertContains(t, buf.String(), "(no markers)")

	buf.Reset()
	m := trace.NewMarker(2500, "M1", "")
	NewWriter(&buf).Markers([]*trace.Marker{m}, v)
	assertContains(t, buf.String(), "M1", "2500ns", m.ID)
}

func TestErrorInfoSuccess(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewWriter(&buf)

	p.Error("boom")
	p.Info("note")
	p.Success("done")
	assertContains(t, ansi.Strip(buf.String()), "error: boom", "note", "✓ done")
}
