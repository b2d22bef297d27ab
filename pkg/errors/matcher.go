package errors

import "strings"

// PatternMatcher maps an error message to a category.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a PatternMatcher with the built-in patterns.
// Categories are checked in a fixed order; the first hit wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []matchRule{
			{CategoryPermission, []string{"permission denied", "access denied", "operation not permitted", "read-only file system"}},
			{CategoryDiskSpace, []string{"no space left on device", "disk full", "quota exceeded"}},
			{CategoryNameTooLong, []string{"file name too long", "name too long"}},
			{CategoryPath, []string{"no such file or directory", "file does not exist", "not a directory", "path does not exist"}},
			{CategoryConnection, []string{
				"connection refused",
				"connection reset",
				"no route to host",
				"i/o timeout",
				"handshake failed",
				"knownhosts",
				"unable to authenticate",
			}},
			{CategoryCopy, []string{"short write", "input/output error", "i/o error", "unexpected eof"}},
		},
	}
}

type matchRule struct {
	category ErrorCategory
	patterns []string
}

type patternMatcher struct {
	rules []matchRule
}

// Match returns the category of the first rule with a pattern contained in
// errorMsg (case-insensitive), or CategoryUnknown.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
