package organizer

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter decides which scanned files take part in a run.
type FileFilter interface {
	// ShouldInclude reports whether the file at the slash-separated path
	// relative to the source root is included.
	ShouldInclude(relativePath string) bool
}

// GlobFilter matches files against a doublestar glob at any depth, so
// "*.pdf" matches both report.pdf and 2024/q1/report.pdf, and
// "q1/*.pdf" matches 2024/q1/report.pdf. Matching is case-insensitive on
// every platform, including case-sensitive filesystems, so "*.PDF" also
// selects report.pdf.
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a GlobFilter. An empty pattern matches all files.
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	if pattern == "" {
		return &GlobFilter{isEmpty: true}, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid pattern %q", ErrConfiguration, pattern)
	}

	normalized := strings.ToLower(strings.TrimPrefix(pattern, "/"))
	if !strings.HasPrefix(normalized, "**/") {
		normalized = "**/" + normalized
	}

	return &GlobFilter{normalizedPattern: normalized}, nil
}

// ShouldInclude implements FileFilter.
func (f *GlobFilter) ShouldInclude(relativePath string) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(relativePath))
	if err != nil {
		return false
	}

	return matched
}
