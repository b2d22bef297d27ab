package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/pkg/errors"
)

// RenderSummary renders the counters of a report as a table.
func RenderSummary(report *organizer.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Result", "Files"})
	tw.AppendRows([]table.Row{
		{"Copied", strconv.Itoa(report.Copied)},
		{"Renamed", strconv.Itoa(report.Renamed)},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Failed", strconv.Itoa(report.Failed)},
	})
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(report.Total())})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight}, //nolint:mnd // second column
	})
	tw.SetCaption("%s copied in %s", humanize.Bytes(uint64(max(report.BytesCopied, 0))), report.Duration().Round(time.Millisecond))

	return tw.Render()
}

// RenderFailures lists failed files with suggestions, or returns "" if none failed.
func RenderFailures(report *organizer.Report) string {
	failures := report.Failures()
	if len(failures) == 0 {
		return ""
	}

	enricher := errors.NewEnricher()

	var builder strings.Builder

	errorColor.Fprintf(&builder, "%d file(s) failed:\n", len(failures))

	for _, failure := range failures {
		path := failure.DestFile
		if path == "" {
			path = failure.SourceFile
		}

		enriched := enricher.Enrich(failure.Err, path)

		fmt.Fprintf(&builder, "\n%s\n  %v\n", failure.SourceFile, enriched)

		if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
			builder.WriteString(suggestions)
			builder.WriteString("\n")
		}
	}

	return strings.TrimRight(builder.String(), "\n")
}
