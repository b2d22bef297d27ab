// Package main is the entry point for the organize-files application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/internal/console"
	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitFilesFailed = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.InteractiveMode {
		return runInteractive(ctx, cfg)
	}

	return runHeadless(ctx, cfg)
}

func runHeadless(ctx context.Context, cfg *config.Config) int {
	printer := console.NewPrinter(os.Stdout, isTerminal(os.Stdout))

	var decider organizer.Decider = organizer.RenameDecider{}
	if cfg.Policy == config.Ask {
		decider = console.NewDecider(os.Stdin, os.Stdout)
	}

	report, err := organizeOnce(ctx, cfg.LogDir, requestFrom(cfg), printer, decider)

	return exitCode(report, err)
}

func runInteractive(ctx context.Context, cfg *config.Config) int {
	model := tui.NewAppModel(cfg, func(
		runCtx context.Context,
		req organizer.Request,
		emitter organizer.EventEmitter,
		decider organizer.Decider,
	) (*organizer.Report, error) {
		// A signal stops the run as well as the program
		runCtx, cancel := context.WithCancel(runCtx)
		defer cancel()

		stopOnSignal := context.AfterFunc(ctx, cancel)
		defer stopOnSignal()

		return organizeOnce(runCtx, cfg.LogDir, req, emitter, decider)
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	// Only use alt screen if stdout is a TTY
	if isTerminal(os.Stdout) {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(model, opts...).Run()
	if ctx.Err() != nil {
		return exitInterrupted
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	if model.Failed() {
		return exitError
	}

	return exitOK
}

func exitCode(report *organizer.Report, err error) int {
	switch {
	case err == nil && report != nil && report.Failed > 0:
		return exitFilesFailed
	case err == nil:
		return exitOK
	case isInterrupted(err):
		return exitInterrupted
	default:
		return exitError
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}

func requestFrom(cfg *config.Config) organizer.Request {
	return organizer.Request{
		SourceRoot: cfg.SourcePath,
		DestRoot:   cfg.DestPath,
		Pattern:    cfg.Pattern,
		Delimiter:  cfg.Delimiter,
		Policy:     cfg.Policy,
	}
}
