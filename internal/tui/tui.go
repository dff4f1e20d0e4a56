package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program viewing opts.Path.
// The program uses the alternate screen buffer and reports mouse motion
// while a button is held, which drags need.
func NewProgram(opts Options, progOpts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	allOpts = append(allOpts, progOpts...)
	return tea.NewProgram(NewAppModel(opts), allOpts...)
}

// Run runs the viewer, blocking until it exits. The session is saved once
// more on exit, since a save still in flight is dropped by tea.Quit.
func Run(ctx context.Context, opts Options) error {
	p := NewProgram(opts, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	m, ok := final.(AppModel)
	if !ok {
		return nil
	}
	if err := m.SaveFinal(ctx); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
