package widgets

import (
	"errors"
	"fmt"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/shared"
)

// NewSummaryWidget creates a widget that displays the result of a run.
// Returns a closure that formats the report and the run error.
func NewSummaryWidget(getReport func() *organizer.Report, err error) func() string {
	return func() string {
		report := getReport()

		switch {
		case errors.Is(err, organizer.ErrNoMatch):
			return "No files found matching the pattern."
		case report == nil && err != nil:
			return fmt.Sprintf("Error: %v", err)
		case report == nil:
			return "No result available"
		}

		headline := organizer.MsgComplete
		if errors.Is(err, organizer.ErrInterrupted) {
			headline = "Interrupted before all files were processed."
		}

		filesWord := "files"
		if report.Total() == 1 {
			filesWord = "file"
		}

		return fmt.Sprintf("%s\n\nProcessed: %d %s\nCopied: %d\nRenamed: %d\nSkipped: %d\nFailed: %d\nBytes copied: %s\nTime elapsed: %s",
			headline,
			report.Total(), filesWord,
			report.Copied,
			report.Renamed,
			report.Skipped,
			report.Failed,
			shared.FormatBytes(report.BytesCopied),
			shared.FormatDuration(report.Duration()))
	}
}
