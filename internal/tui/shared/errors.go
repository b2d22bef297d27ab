package shared

import (
	"fmt"
	"strings"

	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/pkg/errors"
)

// Error display limits for different screen contexts
const (
	// ErrorLimitInProgress is for the run view while files are still being processed
	ErrorLimitInProgress = 3

	// ErrorLimitComplete is for the summary screen
	ErrorLimitComplete = 10
)

// ErrorDisplayContext defines the context in which errors are being displayed
type ErrorDisplayContext int

const (
	// ContextInProgress indicates errors shown during a run
	ContextInProgress ErrorDisplayContext = iota
	// ContextComplete indicates errors shown on the summary screen
	ContextComplete
)

// ErrorListConfig holds configuration for rendering error lists
type ErrorListConfig struct {
	// Failures are the failed outcomes to display
	Failures []organizer.Outcome

	// Context determines the display limit and overflow message
	Context ErrorDisplayContext

	// MaxWidth is the maximum width for path and error message display (0 = no limit)
	MaxWidth int
}

// RenderErrorList renders failed files with their enriched errors and
// suggestions, up to the limit for the display context.
func RenderErrorList(config ErrorListConfig) string {
	if len(config.Failures) == 0 {
		return ""
	}

	var builder strings.Builder

	enricher := errors.NewEnricher()
	limit := getErrorLimit(config.Context)

	for i, failure := range config.Failures {
		if i >= limit {
			fmt.Fprintf(&builder, "%s\n", getOverflowMessage(config.Context, len(config.Failures)-limit))

			break
		}

		affected := failure.DestFile
		if affected == "" {
			affected = failure.SourceFile
		}

		enrichedErr := enricher.Enrich(failure.Err, affected)

		displayPath := failure.SourceFile
		if config.MaxWidth > 0 {
			displayPath = TruncatePath(displayPath, config.MaxWidth)
		}

		fmt.Fprintf(&builder, "  %s %s\n", ErrorSymbol(), FileItemErrorStyle().Render(displayPath))

		errMsg := fmt.Sprint(enrichedErr)
		if config.MaxWidth > 3 && len(errMsg) > config.MaxWidth {
			errMsg = errMsg[:config.MaxWidth-3] + "..."
		}

		fmt.Fprintf(&builder, "    %s\n", errMsg)

		// Suggestions are only worth the space once the run is over
		if config.Context == ContextComplete {
			if suggestions := errors.FormatSuggestions(enrichedErr); suggestions != "" {
				fmt.Fprintf(&builder, "%s\n", "    "+strings.ReplaceAll(suggestions, "\n", "\n    "))
			}
		}
	}

	return builder.String()
}

func getErrorLimit(context ErrorDisplayContext) int {
	if context == ContextInProgress {
		return ErrorLimitInProgress
	}

	return ErrorLimitComplete
}

func getOverflowMessage(context ErrorDisplayContext, remaining int) string {
	if context == ContextInProgress {
		return fmt.Sprintf("  ... and %d more (see summary)", remaining)
	}

	return fmt.Sprintf("... and %d more error(s), see the log file", remaining)
}
