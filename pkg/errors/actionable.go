// Package errors turns per-file failures into actionable messages.
//
// An error is categorised by matching its message against known patterns
// (permission, disk space, path, name length, connection, copy) and paired
// with suggestions the user can act on:
//
//	enricher := errors.NewEnricher()
//	enriched := enricher.Enrich(err, "/data/in/alpha_beta.txt")
//	fmt.Println(enriched.Error())
//	fmt.Println(errors.FormatSuggestions(enriched))
//
// When no path is given the enricher tries to pull one out of the message,
// e.g. "open /home/user/file.txt: permission denied".
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryConnection  ErrorCategory = "connection"
	CategoryCopy        ErrorCategory = "copy"
	CategoryDiskSpace   ErrorCategory = "disk_space"
	CategoryNameTooLong ErrorCategory = "name_too_long"
	CategoryPath        ErrorCategory = "path"
	CategoryPermission  ErrorCategory = "permission"
	CategoryUnknown     ErrorCategory = "unknown"
)

// ActionableError is an error with a category and suggestions for the user.
// Unwrap returns the error it was built from, so errors.Is keeps working.
type ActionableError interface {
	error
	Unwrap() error
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// ErrorCategory is the kind of failure an ActionableError describes.
type ErrorCategory string

// NewActionableError wraps cause with a category, suggestions and the path it concerns.
func NewActionableError(
	cause error,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		cause:        cause,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// FormatSuggestions renders the suggestions of err as an indented bullet list.
// Returns "" when err is nil, not actionable, or has no suggestions.
func FormatSuggestions(err error) string {
	var actionable ActionableError
	if err == nil || !errors.As(err, &actionable) {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

type actionableError struct {
	cause        error
	category     ErrorCategory
	suggestions  []string
	affectedPath string
}

func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

func (e *actionableError) Category() ErrorCategory {
	return e.category
}

func (e *actionableError) Error() string {
	return e.cause.Error()
}

func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

func (e *actionableError) Unwrap() error {
	return e.cause
}
