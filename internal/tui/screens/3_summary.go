package screens

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/shared"
	"github.com/joe/organize-files/internal/tui/widgets"
)

// SummaryScreen shows the result of a run
type SummaryScreen struct {
	report *organizer.Report
	err    error
	logDir string
	width  int
}

// NewSummaryScreen creates the summary for a finished run
func NewSummaryScreen(report *organizer.Report, err error, logDir string) *SummaryScreen {
	return &SummaryScreen{report: report, err: err, logDir: logDir}
}

// Failed reports whether the run itself ended with an error.
// Per-file failures do not count; they are part of the report.
func (s SummaryScreen) Failed() bool {
	return s.err != nil
}

// Init implements tea.Model
func (s SummaryScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter", "esc", shared.KeyCtrlC:
			return s, tea.Quit
		case "n":
			return s, func() tea.Msg { return shared.NewRunMsg{} }
		}
	}

	return s, nil
}

// View implements tea.Model
func (s SummaryScreen) View() string {
	var builder strings.Builder

	title := "Summary"
	body := widgets.NewSummaryWidget(func() *organizer.Report { return s.report }, s.err)()

	switch {
	case errors.Is(s.err, organizer.ErrNoMatch):
		builder.WriteString(shared.RenderTitle(title) + "\n" + shared.RenderWarning(body) + "\n")
	case s.err != nil && !errors.Is(s.err, organizer.ErrInterrupted):
		builder.WriteString(shared.RenderTitle(title) + "\n" + shared.RenderError(body) + "\n")
	default:
		builder.WriteString(shared.RenderTitle(title) + "\n" + body + "\n")
	}

	if s.report != nil {
		if errorList := shared.RenderErrorList(shared.ErrorListConfig{
			Failures: s.report.Failures(),
			Context:  shared.ContextComplete,
			MaxWidth: max(s.width-shared.InputWidthMargin, 0),
		}); errorList != "" {
			builder.WriteString("\n" + shared.RenderLabel("Failed files:") + "\n" + errorList)
		}
	}

	if s.logDir != "" {
		builder.WriteString("\n" + shared.RenderDim("Run logs: "+s.logDir) + "\n")
	}

	builder.WriteString("\n" + shared.RenderSubtitle("n to organize more files • q/Enter to exit"))

	return shared.RenderBox(builder.String())
}
