package shared

import (
	"strings"
)

// ActivityLog keeps the most recent status lines of a run.
// The zero value keeps every line.
type ActivityLog struct {
	limit   int
	entries []string
}

// NewActivityLog creates a log that keeps at most limit lines (0 keeps all).
func NewActivityLog(limit int) ActivityLog {
	return ActivityLog{limit: limit}
}

// Add appends a line, dropping the oldest once the limit is reached.
func (l ActivityLog) Add(line string) ActivityLog {
	entries := append(append([]string(nil), l.entries...), line)
	if l.limit > 0 && len(entries) > l.limit {
		entries = entries[len(entries)-l.limit:]
	}

	l.entries = entries

	return l
}

// Entries returns the kept lines, oldest first.
func (l ActivityLog) Entries() []string {
	return l.entries
}

// Reset clears the log.
func (l ActivityLog) Reset() ActivityLog {
	l.entries = nil
	return l
}

// Render renders the log under an optional title.
func (l ActivityLog) Render(title string) string {
	return RenderActivityLog(title, l.entries, l.limit)
}

// RenderActivityLog renders entries oldest first with an optional title.
// If maxEntries > 0 only the most recent maxEntries lines are shown.
func RenderActivityLog(title string, entries []string, maxEntries int) string {
	var builder strings.Builder

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle != "" {
		builder.WriteString(RenderLabel(trimmedTitle))
		builder.WriteString("\n")

		if len(entries) > 0 {
			builder.WriteString("\n")
		}
	}

	if len(entries) == 0 {
		return builder.String()
	}

	startIdx := 0
	if maxEntries > 0 && maxEntries < len(entries) {
		startIdx = len(entries) - maxEntries
	}

	for i := startIdx; i < len(entries); i++ {
		builder.WriteString("  ")
		builder.WriteString(entries[i])

		if i < len(entries)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
