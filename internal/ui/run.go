package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"encsweep/internal/progress"
)

// WorkFunc is the sweep driven by the display. It reports through rep and
// must return once ctx is cancelled.
type WorkFunc func(ctx context.Context, rep progress.Reporter) error

// Run shows the multi-job display while work runs and returns work's error.
// Quitting the display cancels the context handed to work and waits for it.
func Run(ctx context.Context, out io.Writer, title, subtitle string, work WorkFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, cancel, title, subtitle)
	rep := teaReporter{ch: m.eventCh, done: ctx.Done()}

	workErr := make(chan error, 1)
	go func() {
		err := work(ctx, rep)
		workErr <- err
		rep.send(workDoneMsg{Err: err})
	}()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	_, runErr := tea.NewProgram(m, opts...).Run()

	// Either work finished or the user quit; make sure work sees the cancel.
	cancel()
	err := <-workErr
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return errors.Join(runErr, err)
	}
	return err
}
