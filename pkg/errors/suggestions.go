package errors

import "fmt"

// SuggestionGenerator produces suggestions for a category of error.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

type suggestionGenerator struct{}

// Generate returns suggestions for category, personalised with affectedPath when known.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.permission(affectedPath)
	case CategoryDiskSpace:
		return g.diskSpace(affectedPath)
	case CategoryNameTooLong:
		return g.nameTooLong(affectedPath)
	case CategoryPath:
		return g.path(affectedPath)
	case CategoryConnection:
		return g.connection()
	case CategoryCopy:
		return g.copy()
	case CategoryUnknown:
		return g.unknown(affectedPath)
	default:
		return g.unknown(affectedPath)
	}
}

func (g *suggestionGenerator) connection() []string {
	return []string{
		"Check that the SFTP host is reachable and the port is correct",
		"Make sure the host key is listed in ~/.ssh/known_hosts",
		"Load your key into ssh-agent or place it in ~/.ssh/id_ed25519 or ~/.ssh/id_rsa",
	}
}

func (g *suggestionGenerator) copy() []string {
	return []string{
		"Check that the destination has enough free space",
		"Verify the source and destination media are working",
		"Run the organizer again; files already copied can be skipped",
	}
}

func (g *suggestionGenerator) diskSpace(path string) []string {
	suggestions := []string{
		"Free up space on the destination device",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify disk usage for the filesystem containing "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) nameTooLong(path string) []string {
	suggestions := []string{
		"Shorten the file name so fewer folder levels are derived from it",
		"Pick a delimiter that splits the name into fewer segments",
	}

	if path != "" {
		suggestions = append(suggestions, "Rename the source file: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) path(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions,
			"Check if the path exists: "+path,
			"Ensure all parent directories exist for "+path,
		)
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) permission(path string) []string {
	suggestions := []string{
		"Ensure you can read the source files and write to the destination",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the affected path")
	}

	return suggestions
}

func (g *suggestionGenerator) unknown(path string) []string {
	suggestions := []string{
		"Check the run log for more details",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
