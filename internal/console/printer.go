// Package console renders a run on a plain terminal: coloured status lines,
// a progress bar, and a summary table at the end.
package console

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/joe/organize-files/internal/organizer"
)

// Exported constants.
const (
	ProgressWidth = 40
)

// unexported variables.
var (
	//nolint:gochecknoglobals // Shared colour palette
	infoColor = color.New(color.FgCyan)
	//nolint:gochecknoglobals // Shared colour palette
	successColor = color.New(color.FgGreen)
	//nolint:gochecknoglobals // Shared colour palette
	renameColor = color.New(color.FgBlue)
	//nolint:gochecknoglobals // Shared colour palette
	skipColor = color.New(color.FgYellow)
	//nolint:gochecknoglobals // Shared colour palette
	errorColor = color.New(color.FgRed, color.Bold)
)

// Printer renders organizer events. It implements organizer.EventEmitter.
type Printer struct {
	mu           sync.Mutex
	out          io.Writer
	showProgress bool
	bar          *progressbar.ProgressBar
}

// NewPrinter creates a Printer writing to out. The progress bar is drawn
// only when showProgress is set, which callers tie to out being a terminal.
func NewPrinter(out io.Writer, showProgress bool) *Printer {
	return &Printer{out: out, showProgress: showProgress}
}

// Emit implements organizer.EventEmitter.
func (p *Printer) Emit(event organizer.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := event.(type) {
	case organizer.RunStarted:
		infoColor.Fprintln(p.out, organizer.MsgStarting)
		fmt.Fprintf(p.out, "  %s -> %s  (pattern %s, delimiter %q, conflicts: %s)\n",
			e.Request.SourceRoot, e.Request.DestRoot, e.Request.Pattern, e.Request.Delimiter, e.Request.Policy)
	case organizer.ScanComplete:
		fmt.Fprintf(p.out, "Found %d matching files\n", e.Matched)

		if p.showProgress && e.Matched > 0 {
			p.bar = newProgressBar(p.out)
		}
	case organizer.FileProcessed:
		p.clearBar()
		outcomeColor(e.Outcome.Kind).Fprintln(p.out, e.Message)

		if e.Outcome.Warning != nil {
			skipColor.Fprintf(p.out, "  Warning: %v\n", e.Outcome.Warning)
		}
		p.setBar(e.Percent)
	case organizer.RunComplete:
		p.finishBar()
		successColor.Fprintln(p.out, "\n"+organizer.MsgComplete)
		fmt.Fprintln(p.out, RenderSummary(e.Report))

		if failures := RenderFailures(e.Report); failures != "" {
			fmt.Fprintln(p.out, failures)
		}
	case organizer.RunFailed:
		p.finishBar()

		if errors.Is(e.Err, organizer.ErrNoMatch) {
			skipColor.Fprintln(p.out, "No files found matching the pattern.")
			return
		}

		errorColor.Fprintf(p.out, "An error occurred: %v\n", e.Err)
	case organizer.FileFailed:
		// shown with its FileProcessed line and in the summary
	}
}

func (p *Printer) clearBar() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}

func (p *Printer) finishBar() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func (p *Printer) setBar(percent int) {
	if p.bar != nil {
		_ = p.bar.Set(percent)
	}
}

func newProgressBar(out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(organizer.PercentageScale,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Organizing"),
		progressbar.OptionSetWidth(ProgressWidth),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

func outcomeColor(kind organizer.OutcomeKind) *color.Color {
	switch kind {
	case organizer.Copied:
		return successColor
	case organizer.Renamed:
		return renameColor
	case organizer.Skipped:
		return skipColor
	case organizer.Failed:
		return errorColor
	default:
		return infoColor
	}
}
