package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/shared"
	"github.com/joe/organize-files/internal/tui/widgets"
)

// RunScreen shows a run in progress and answers conflict prompts
type RunScreen struct {
	request  organizer.Request
	progress progress.Model
	spinner  spinner.Model
	activity shared.ActivityLog
	matched  int
	last     *organizer.FileProcessed
	failures []organizer.Outcome
	prompt   *shared.ConflictPromptMsg
	stopping bool
	width    int
}

// NewRunScreen creates the run view for req
func NewRunScreen(req organizer.Request) *RunScreen {
	return &RunScreen{
		request:  req,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(shared.ProgressBarWidth)),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(shared.LabelStyle())),
		activity: shared.NewActivityLog(shared.ActivityLogLines),
	}
}

// Activity returns the status lines on screen (for testing)
func (s RunScreen) Activity() []string {
	return s.activity.Entries()
}

// Prompting returns the destination file awaiting an answer, or "" (for testing)
func (s RunScreen) Prompting() string {
	if s.prompt == nil {
		return ""
	}

	return s.prompt.DestFile
}

// Stopping marks the run as interrupted by the user.
func (s RunScreen) Stopping() RunScreen {
	s.stopping = true
	return s
}

// Init implements tea.Model
func (s RunScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s RunScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.progress.Width = min(max(msg.Width-shared.InputWidthMargin, shared.MinInputWidth), shared.MaxProgressBarWidth)
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)

		return s, cmd
	case shared.OrganizerEventMsg:
		return s.handleEvent(msg.Event), nil
	case shared.ConflictPromptMsg:
		s.prompt = &msg
	case tea.KeyMsg:
		if s.prompt != nil {
			return s.answerPrompt(msg.String()), nil
		}
	}

	return s, nil
}

// View implements tea.Model
func (s RunScreen) View() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("Organizing Files"))
	builder.WriteString("\n")
	fmt.Fprintf(&builder, "%s %s\n%s %s\n\n",
		shared.RenderLabel("From:"), s.request.SourceRoot,
		shared.RenderLabel("To:  "), s.request.DestRoot)

	status := widgets.NewProgressWidget(
		func() int { return s.matched },
		func() *organizer.FileProcessed { return s.last },
	)()

	if s.last == nil {
		builder.WriteString(s.spinner.View() + " " + status + "\n")
	} else {
		builder.WriteString(s.progress.ViewAs(float64(s.last.Percent)/organizer.PercentageScale) + "\n")
		builder.WriteString(shared.RenderDim(status) + "\n")
	}

	if s.stopping {
		builder.WriteString("\n" + shared.RenderWarning("Stopping after the current file...") + "\n")
	}

	if s.prompt != nil {
		builder.WriteString("\n" + shared.RenderModal("File already exists",
			s.prompt.DestFile+"\n\n"+
				"y  overwrite it\n"+
				"n  skip this file\n"+
				"r  keep both (rename the new copy)\n\n"+
				shared.RenderDim("Esc also keeps both")) + "\n")
	}

	if entries := s.activity.Entries(); len(entries) > 0 {
		builder.WriteString("\n" + shared.RenderWidgetBox("Status", strings.Join(entries, "\n"), s.width) + "\n")
	}

	if len(s.failures) > 0 {
		builder.WriteString("\n" + shared.RenderErrorList(shared.ErrorListConfig{
			Failures: s.failures,
			Context:  shared.ContextInProgress,
			MaxWidth: max(s.width-shared.InputWidthMargin, 0),
		}))
	}

	return shared.RenderBox(builder.String())
}

func (s RunScreen) answerPrompt(key string) RunScreen {
	var action organizer.Action

	switch key {
	case "y":
		action = organizer.ActionOverwrite
	case "n":
		action = organizer.ActionSkip
	case "r", "esc":
		action = organizer.ActionRename
	default:
		return s
	}

	// Reply is buffered; the run goroutine may already have given up
	select {
	case s.prompt.Reply <- action:
	default:
	}

	s.activity = s.activity.Add(shared.RenderDim(fmt.Sprintf("%s: %s", s.prompt.DestFile, action)))
	s.prompt = nil

	return s
}

func (s RunScreen) handleEvent(event organizer.Event) RunScreen {
	switch e := event.(type) {
	case organizer.RunStarted:
		s.activity = s.activity.Reset().Add(organizer.MsgStarting)
	case organizer.ScanComplete:
		s.matched = e.Matched
		s.activity = s.activity.Add(fmt.Sprintf("Found %d matching files", e.Matched))
	case organizer.FileProcessed:
		s.last = &e
		s.activity = s.activity.Add(renderOutcomeLine(e.Outcome, e.Message))

		if e.Outcome.Warning != nil {
			s.activity = s.activity.Add(shared.RenderWarning(fmt.Sprintf("  Warning: %v", e.Outcome.Warning)))
		}

		if e.Outcome.Kind == organizer.Failed {
			s.failures = append(s.failures, e.Outcome)
		}
	case organizer.RunComplete:
		s.activity = s.activity.Add(shared.RenderSuccess(organizer.MsgComplete))
	case organizer.RunFailed:
		s.activity = s.activity.Add(shared.RenderError(fmt.Sprintf("An error occurred: %v", e.Err)))
	}

	return s
}

func renderOutcomeLine(outcome organizer.Outcome, message string) string {
	switch outcome.Kind {
	case organizer.Copied, organizer.Renamed:
		return shared.SuccessSymbol() + " " + message
	case organizer.Skipped:
		return shared.RenderDim(shared.SkippedSymbol() + " " + message)
	case organizer.Failed:
		return shared.FileItemErrorStyle().Render(shared.ErrorSymbol() + " " + message)
	default:
		return message
	}
}
