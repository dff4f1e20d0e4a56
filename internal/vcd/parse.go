// Package vcd reads Value Change Dump files into a trace.Trace.
//
// The reader is deliberately permissive: simulators disagree on the finer
// points of the format, so a malformed declaration or an unknown identifier
// only costs the offending line. The only errors Parse returns are *IOError
// (the source could not be read) and *ParseError (an internal failure).
package vcd

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/papapumpkin/vcdscope/internal/trace"
)

// maxLineBytes bounds a single line of input. Some dumpers emit very long
// $comment or vector lines.
const maxLineBytes = 64 << 20

type options struct {
	logger     zerolog.Logger
	onDiag     func(Diagnostic)
	dumpValues bool
}

// Option configures Parse.
type Option func(*options)

// WithLogger logs every skipped line at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDiagnostics calls fn for every problem the parser recovers from.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(o *options) { o.onDiag = fn }
}

// WithDumpValues applies the value changes listed inside $dumpvars,
// $dumpall, $dumpon and $dumpoff blocks. By default those blocks are skipped
// up to their $end like any other unrecognized directive.
func WithDumpValues(apply bool) Option {
	return func(o *options) { o.dumpValues = apply }
}

// ParseFile opens path and parses it. Open and read failures are reported
// as *IOError carrying the path.
func ParseFile(path string, opts ...Option) (*trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: errors.WithStack(err)}
	}
	defer f.Close()

	tr, err := Parse(f, opts...)
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		ioErr.Path = path
	}
	return tr, err
}

// Parse reads a VCD stream to the end and returns the resulting trace.
func Parse(r io.Reader, opts ...Option) (tr *trace.Trace, err error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &session{tr: trace.New(), opts: o}

	defer func() {
		if p := recover(); p != nil {
			tr = nil
			err = &ParseError{Line: s.line, Err: errors.Errorf("unexpected failure: %v", p)}
		}
	}()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		s.processLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Err: errors.Wrapf(err, "read line %d", s.line+1)}
	}
	s.finishInput()

	st := s.tr.Stats()
	o.logger.Debug().
		Int("lines", s.line).
		Int("signals", st.Signals).
		Int("changes", st.Changes).
		Int64("max_time", s.tr.MaxTimestamp).
		Str("timescale", s.tr.Timescale).
		Msg("vcd: parse complete")
	return s.tr, nil
}

// session is the running state of one parse: the scope stack, the current
// timestamp and any directive whose tokens are still being collected.
type session struct {
	tr   *trace.Trace
	opts options

	line   int
	scopes []string
	now    int64
	body   bool // past $enddefinitions

	directive string   // open directive keyword, "" when none
	args      []string // tokens collected for the open directive
	openedAt  int
}

func (s *session) processLine(raw string) {
	s.line++
	text := strings.TrimSpace(raw)
	if text == "" {
		return
	}

	if s.directive != "" {
		s.collect(strings.Fields(text))
		return
	}

	if text[0] == '$' {
		s.openDirective(strings.Fields(text))
		return
	}

	if !s.body {
		// Stray header text outside any directive.
		return
	}

	if text[0] == '#' {
		s.timestamp(text)
		return
	}

	ch, err := decodeChange(text)
	if err != nil {
		s.report(err, text)
		return
	}
	s.apply(ch, text)
}

func isDumpBlock(kw string) bool {
	switch kw {
	case "$dumpvars", "$dumpall", "$dumpon", "$dumpoff":
		return true
	}
	return false
}

// openDirective starts a new $keyword. The first token is the keyword; the
// rest are its arguments so far.
func (s *session) openDirective(fields []string) {
	kw := fields[0]
	switch {
	case kw == "$end":
		// Closes a dump block; a stray one elsewhere is harmless.
		if len(fields) > 1 && strings.HasPrefix(fields[1], "$") {
			s.openDirective(fields[1:])
		}
		return
	case s.body && s.opts.dumpValues && isDumpBlock(kw):
		// The block body is ordinary value changes up to a lone $end.
		return
	}

	s.directive = kw
	s.args = s.args[:0]
	s.openedAt = s.line
	s.collect(fields[1:])
}

// collect appends tokens to the open directive until $end closes it.
// Anything following $end on the same line may open the next directive.
func (s *session) collect(tokens []string) {
	for i, tok := range tokens {
		if tok != "$end" {
			s.args = append(s.args, tok)
			continue
		}
		s.finishDirective()
		if rest := tokens[i+1:]; len(rest) > 0 && strings.HasPrefix(rest[0], "$") {
			s.openDirective(rest)
		}
		return
	}
}

func (s *session) finishDirective() {
	kw, args := s.directive, s.args
	s.directive = ""

	if s.body {
		// Declarations after $enddefinitions are not interpreted.
		return
	}

	switch kw {
	case "$timescale":
		if len(args) == 0 {
			s.report(ErrMalformedDirective, kw+" without value")
			return
		}
		s.tr.Timescale = strings.Join(args, " ")

	case "$scope":
		if len(args) < 2 {
			s.report(ErrMalformedDirective, kw+" "+strings.Join(args, " "))
			return
		}
		s.scopes = append(s.scopes, args[1])

	case "$upscope":
		if n := len(s.scopes); n > 0 {
			s.scopes = s.scopes[:n-1]
		}

	case "$var":
		s.declareVar(args)

	case "$enddefinitions":
		s.body = true
	}
}

// declareVar handles "$var <type> <width> <identifier> <name> ...".
func (s *session) declareVar(args []string) {
	if len(args) < 4 {
		s.report(ErrMalformedDirective, "$var "+strings.Join(args, " "))
		return
	}
	width, err := strconv.Atoi(args[1])
	if err != nil || width < 1 {
		s.report(ErrMalformedDirective, "$var width "+strconv.Quote(args[1]))
		return
	}
	sig := trace.NewSignal(args[2], args[3], strings.Join(s.scopes, "."), width)
	s.tr.AddSignal(sig)
}

func (s *session) timestamp(text string) {
	t, err := strconv.ParseInt(text[1:], 10, 64)
	if err != nil || t < 0 {
		s.report(ErrMalformedDirective, text)
		return
	}
	s.now = t
	s.tr.UpdateMaxTimestamp(t)
}

func (s *session) apply(ch Change, text string) {
	var value string
	switch c := ch.(type) {
	case Scalar:
		value = string(c.Bit)
	case Vector:
		value = c.Bits
	case Real:
		value = c.Text
	default:
		panic(errors.Errorf("unhandled change type %T", ch))
	}

	sig := s.tr.SignalByIdentifier(ch.Ident())
	if sig == nil {
		s.report(ErrUnknownIdentifier, text)
		return
	}
	sig.AddChange(s.now, value)
}

// finishInput reports a directive left open at end of input. Its tokens
// are discarded.
func (s *session) finishInput() {
	if s.directive == "" {
		return
	}
	s.line = s.openedAt
	s.report(ErrMalformedDirective, s.directive+" without $end")
	s.directive = ""
}

func (s *session) report(kind error, text string) {
	if len(text) > 120 {
		text = text[:120] + "..."
	}
	s.opts.logger.Debug().
		Int("line", s.line).
		Str("kind", kind.Error()).
		Str("text", text).
		Msg("vcd: skipped")
	if s.opts.onDiag != nil {
		s.opts.onDiag(Diagnostic{Line: s.line, Kind: kind, Text: text})
	}
}
