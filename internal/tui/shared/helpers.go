package shared

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats bytes into human-readable format (e.g., "1.5 MB")
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	return humanize.Bytes(uint64(bytes))
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// TruncatePath shortens path to maxWidth by eliding its middle.
func TruncatePath(path string, maxWidth int) string {
	const ellipsis = "..."

	runes := []rune(path)
	if maxWidth <= len(ellipsis) || len(runes) <= maxWidth {
		return path
	}

	keep := maxWidth - len(ellipsis)
	head := keep / 2 //nolint:mnd // Split the kept characters evenly
	tail := keep - head

	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
