package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ldc/internal/driver"
	"ldc/internal/source"
	"ldc/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// checkWithUI runs CheckMany in the background and renders progress via
// Bubble Tea until the run ends.
func checkWithUI(ctx context.Context, paths []string, opts driver.CheckManyOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	opts.Events = func(ev driver.Event) {
		events <- ev
	}

	go func() {
		fileSet, results, err := driver.CheckMany(ctx, paths, opts)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
