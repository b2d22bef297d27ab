package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher turns plain errors into ActionableErrors.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates an Enricher with the default matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled once, shared by all enrichers
	pathExtractionPatterns = []*regexp.Regexp{
		// "open /path/to/file: ..." and relative "./x: ..."
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows, backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
		// Windows, forward slashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
	}
)

type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich categorises err and attaches suggestions. Nil stays nil and an
// error that is already actionable is returned unchanged. When affectedPath
// is empty a path is extracted from the message if one can be found.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return err
	}

	errMsg := err.Error()

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	category := e.matcher.Match(errMsg)

	return NewActionableError(err, category, e.generator.Generate(category, affectedPath), affectedPath)
}

// extractPath pulls the path out of messages shaped like
// "open /path/to/file: permission denied". Returns "" when there is none.
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
