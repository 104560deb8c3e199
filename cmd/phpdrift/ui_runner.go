package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phpdrift/internal/diag"
	"phpdrift/internal/driver"
	"phpdrift/internal/source"
	"phpdrift/internal/ui"
)

type scanOutcome struct {
	fs      *source.FileSet
	results []driver.CheckDirResult
	runBag  *diag.Bag
	err     error
}

// runScanWithUI запускает CheckDir в фоне и рисует по-файловый прогресс в
// терминале. Канал событий закрывается после завершения прогона, на
// закрытии модель сама останавливает программу bubbletea.
func runScanWithUI(ctx context.Context, title, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.CheckDirResult, *diag.Bag, error) {
	files := driver.ListFiles(dir, opts.Extensions, opts.Exclude)
	events := make(chan driver.ScanEvent, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		scanOpts := opts
		scanOpts.Observer = func(ev driver.ScanEvent) {
			events <- ev
		}
		fs, results, runBag, err := driver.CheckDir(ctx, dir, scanOpts, jobs)
		outcomeCh <- scanOutcome{fs: fs, results: results, runBag: runBag, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// Если TUI завершился раньше прогона, дочитываем события, иначе
	// воркеры заблокируются на полном канале.
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, outcome.runBag, uiErr
	}
	return outcome.fs, outcome.results, outcome.runBag, outcome.err
}
