// Package tui is the interactive front end: terms of use, a form for the
// run options, a live view of the run and a summary.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/screens"
	"github.com/joe/organize-files/internal/tui/shared"
)

// Phase represents the current workflow phase
type Phase int

const (
	PhaseTerms Phase = iota
	PhaseInput
	PhaseRun
	PhaseSummary
)

// String returns the phase key for timeline rendering
func (p Phase) String() string {
	switch p {
	case PhaseTerms:
		return shared.PhaseKeyTerms
	case PhaseInput:
		return shared.PhaseKeyInput
	case PhaseRun:
		return shared.PhaseKeyOrganize
	case PhaseSummary:
		return shared.PhaseKeyDone
	default:
		return shared.PhaseKeyInput
	}
}

// RunFunc executes one run. The request roots are what the user typed
// (local paths or sftp:// URLs); the host resolves them to filesystems.
type RunFunc func(
	ctx context.Context,
	req organizer.Request,
	emitter organizer.EventEmitter,
	decider organizer.Decider,
) (*organizer.Report, error)

// AppModel is the top-level model. It owns the screens and the run goroutine.
type AppModel struct {
	config *config.Config
	run    RunFunc
	phase  Phase

	terms   screens.TermsScreen
	input   screens.InputScreen
	running screens.RunScreen
	summary screens.SummaryScreen

	bridge   *shared.EventBridge
	cancel   context.CancelFunc
	declined bool
	quitting bool
	failed   bool
	size     *tea.WindowSizeMsg
}

// NewAppModel creates the app. The terms screen is skipped when cfg.AcceptTerms is set.
func NewAppModel(cfg *config.Config, run RunFunc) *AppModel {
	app := &AppModel{
		config: cfg,
		run:    run,
		phase:  PhaseTerms,
		terms:  *screens.NewTermsScreen(),
		input:  *screens.NewInputScreen(cfg),
	}

	if cfg.AcceptTerms {
		app.phase = PhaseInput
	}

	return app
}

// Declined reports whether the user declined the terms of use.
func (a *AppModel) Declined() bool {
	return a.declined
}

// Failed reports whether the last run ended with a run-level error.
func (a *AppModel) Failed() bool {
	return a.failed
}

// Phase returns the current phase (for testing)
func (a *AppModel) Phase() Phase {
	return a.phase
}

// RunScreen returns the run view (for testing)
func (a *AppModel) RunScreen() screens.RunScreen {
	return a.running
}

// InputScreen returns the form (for testing)
func (a *AppModel) InputScreen() screens.InputScreen {
	return a.input
}

// Init implements tea.Model
func (a *AppModel) Init() tea.Cmd {
	if a.phase == PhaseInput {
		return a.input.Init()
	}

	return a.terms.Init()
}

// Update implements tea.Model
//
//nolint:cyclop // Message dispatch for the whole workflow
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = &msg
		return a, a.propagateWindowSize(msg)
	case tea.KeyMsg:
		if msg.String() == shared.KeyCtrlC && a.phase == PhaseRun {
			return a.stopRun()
		}
	case shared.TermsAcceptedMsg:
		a.phase = PhaseInput
		return a, a.input.Init()
	case shared.TermsDeclinedMsg:
		a.declined = true
		return a, tea.Quit
	case shared.StartRunMsg:
		return a.startRun(msg.Request)
	case shared.OrganizerEventMsg, shared.ConflictPromptMsg:
		var cmd tea.Cmd
		a.running, cmd = updateScreen(a.running, msg)

		return a, tea.Batch(cmd, a.bridge.ListenCmd())
	case shared.RunFinishedMsg:
		return a.finishRun(msg)
	case shared.NewRunMsg:
		a.phase = PhaseInput
		input, resizeCmd := resizeScreen(*screens.NewInputScreen(a.config), a.size)
		a.input = input

		return a, tea.Batch(a.input.Init(), resizeCmd)
	}

	return a.delegateToActiveScreen(msg)
}

// View implements tea.Model
func (a *AppModel) View() string {
	timelineKey := a.phase.String()
	if a.phase == PhaseSummary && a.failed {
		timelineKey = shared.PhaseKeyOrganize + "_error"
	}

	header := shared.RenderTimeline(timelineKey) + "\n\n"

	switch a.phase {
	case PhaseTerms:
		return header + a.terms.View()
	case PhaseInput:
		return header + a.input.View()
	case PhaseRun:
		return header + a.running.View()
	case PhaseSummary:
		return header + a.summary.View()
	default:
		return header
	}
}

func (a *AppModel) delegateToActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.phase {
	case PhaseTerms:
		a.terms, cmd = updateScreen(a.terms, msg)
	case PhaseInput:
		a.input, cmd = updateScreen(a.input, msg)
	case PhaseRun:
		a.running, cmd = updateScreen(a.running, msg)
	case PhaseSummary:
		a.summary, cmd = updateScreen(a.summary, msg)
	}

	return a, cmd
}

func (a *AppModel) finishRun(msg shared.RunFinishedMsg) (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
	}

	if a.bridge != nil {
		a.bridge.Close()
	}

	a.failed = msg.Err != nil
	a.phase = PhaseSummary

	summary, cmd := resizeScreen(*screens.NewSummaryScreen(msg.Report, msg.Err, a.config.LogDir), a.size)
	a.summary = summary

	if a.quitting {
		return a, tea.Quit
	}

	return a, cmd
}

func (a *AppModel) propagateWindowSize(msg tea.WindowSizeMsg) tea.Cmd {
	var cmds [4]tea.Cmd

	a.terms, cmds[0] = updateScreen(a.terms, msg)
	a.input, cmds[1] = updateScreen(a.input, msg)
	a.running, cmds[2] = updateScreen(a.running, msg)
	a.summary, cmds[3] = updateScreen(a.summary, msg)

	return tea.Batch(cmds[:]...)
}

// startRun launches the run on its own goroutine. Events, prompts and the
// final result all come back through the bridge in order.
func (a *AppModel) startRun(req organizer.Request) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	bridge := shared.NewEventBridge()
	decider := newPromptDecider(bridge)

	a.phase = PhaseRun
	a.cancel = cancel
	a.bridge = bridge
	a.running, _ = resizeScreen(*screens.NewRunScreen(req), a.size)

	run := a.run
	runCmd := func() tea.Msg {
		report, err := run(ctx, req, bridge, decider)
		_ = bridge.Send(context.Background(), shared.RunFinishedMsg{Report: report, Err: err})

		return nil
	}

	return a, tea.Batch(runCmd, bridge.ListenCmd(), a.running.Init())
}

// stopRun cancels the run and quits once it has reported back.
func (a *AppModel) stopRun() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.running = a.running.Stopping()

	if a.cancel != nil {
		a.cancel()
	}

	return a, nil
}

// resizeScreen replays the last window size into a freshly created screen.
func resizeScreen[S tea.Model](screen S, size *tea.WindowSizeMsg) (S, tea.Cmd) {
	if size == nil {
		return screen, nil
	}

	return updateScreen(screen, *size)
}

// updateScreen runs a screen's Update and keeps its concrete type.
func updateScreen[S tea.Model](screen S, msg tea.Msg) (S, tea.Cmd) {
	model, cmd := screen.Update(msg)

	if updated, ok := model.(S); ok {
		return updated, cmd
	}

	return screen, cmd
}
