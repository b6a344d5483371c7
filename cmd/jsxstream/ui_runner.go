package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"jsxstream/internal/buildpipeline"
	"jsxstream/internal/driver"
	"jsxstream/internal/ui"
)

type buildOutcome struct {
	result *driver.BuildResult
	err    error
}

type buildFunc func(ctx context.Context, opts driver.BuildOptions) (*driver.BuildResult, error)

// runBuildWithUI runs build behind the progress view. Quitting the view
// cancels the build; events left in the channel are drained so the
// build goroutine never blocks on them.
func runBuildWithUI(ctx context.Context, title string, files []string, opts driver.BuildOptions, build buildFunc) (*driver.BuildResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := build(ctx, opts)
		close(events)
		outcomeCh <- buildOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после doneMsg сборка уже завершена, отмена ничего не меняет
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
