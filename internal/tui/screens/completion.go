package screens

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joe/organize-files/internal/tui/shared"
	"github.com/joe/organize-files/pkg/filesystem"
)

const maxCompletionsShown = 8

// getFolderCompletions lists local folders that complete input.
// Remote locations are not completed.
func getFolderCompletions(input string) []string {
	if filesystem.IsRemoteLocation(input) {
		return nil
	}

	input = expandHomePath(input)
	dir, prefix := parseCompletionPath(input)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	completions := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !shouldIncludeEntry(name, prefix) {
			continue
		}

		completions = append(completions, filepath.Join(dir, name)+string(filepath.Separator))
	}

	sort.Strings(completions)

	return completions
}

func expandHomePath(input string) string {
	if input == "" {
		return "."
	}

	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, input[1:])
		}
	}

	return input
}

func parseCompletionPath(input string) (dir, prefix string) {
	// A trailing separator means we are completing inside that directory
	if strings.HasSuffix(input, string(filepath.Separator)) {
		return input, ""
	}

	return filepath.Dir(input), filepath.Base(input)
}

func shouldIncludeEntry(name, prefix string) bool {
	// Hidden folders only when asked for
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
		return false
	}

	return prefix == "" || strings.HasPrefix(name, prefix)
}

func getBaseName(path string) string {
	trimmed := strings.TrimSuffix(path, string(filepath.Separator))

	base := filepath.Base(trimmed)
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return base + string(filepath.Separator)
	}

	return base
}

// formatCompletionList renders a window of completions around the selected one.
func formatCompletionList(completions []string, currentIndex int) string {
	if len(completions) == 0 {
		return ""
	}

	if len(completions) == 1 {
		return shared.CompletionStyle().Render("  → " + getBaseName(completions[0]))
	}

	start, end := completionWindow(currentIndex, maxCompletionsShown, len(completions))

	lines := []string{shared.CompletionStyle().Render("  " + strings.Repeat("─", shared.ProgressBarWidth))}

	if start > 0 {
		lines = append(lines, shared.CompletionStyle().Render("    ..."))
	}

	for i := start; i < end; i++ {
		base := getBaseName(completions[i])
		if i == currentIndex {
			lines = append(lines, shared.CompletionSelectedStyle().Render("  "+shared.PromptArrow+base))
		} else {
			lines = append(lines, shared.CompletionStyle().Render("    "+base))
		}
	}

	if end < len(completions) {
		lines = append(lines, shared.CompletionStyle().Render("    ..."))
	}

	return strings.Join(lines, "\n")
}

func completionWindow(currentIndex, maxShow, totalCount int) (start, end int) {
	start = max(currentIndex-maxShow/2, 0) //nolint:mnd // Center the selection

	end = start + maxShow
	if end > totalCount {
		end = totalCount
		start = max(end-maxShow, 0)
	}

	return start, end
}
