package widgets

import (
	"fmt"

	"github.com/joe/organize-files/internal/organizer"
)

// NewProgressWidget creates a widget that displays run progress.
// Returns a closure that formats the latest FileProcessed event, or the
// scan state before the first file is done.
func NewProgressWidget(getMatched func() int, getLast func() *organizer.FileProcessed) func() string {
	return func() string {
		last := getLast()
		if last == nil {
			matched := getMatched()
			if matched == 0 {
				return "Scanning source folder..."
			}

			return fmt.Sprintf("Files: 0 / %d (0%%)", matched)
		}

		return fmt.Sprintf("Files: %d / %d (%d%%)", last.Index+1, last.Total, last.Percent)
	}
}
