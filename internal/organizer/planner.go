package organizer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PlannedCopy is where one source file goes.
type PlannedCopy struct {
	SourceFile string
	DestFolder string
	DestFile   string
}

// Planner derives destination paths from file names.
// Join builds paths for the destination filesystem.
type Planner struct {
	Join func(elem ...string) string
}

// NewPlanner creates a Planner that joins destination paths with join.
func NewPlanner(join func(elem ...string) string) *Planner {
	return &Planner{Join: join}
}

// Plan computes the destination for sourceFile on the local filesystem.
func Plan(sourceFile, destRoot, delimiter string) (string, error) {
	planned, err := NewPlanner(filepath.Join).Plan(sourceFile, destRoot, delimiter)
	if err != nil {
		return "", err
	}

	return planned.DestFile, nil
}

// Plan splits the stem of sourceFile's base name on delimiter. Every segment
// but the last becomes a folder level under destRoot, and the file keeps its
// full original name:
//
//	alpha_beta_report.txt -> destRoot/alpha/beta/alpha_beta_report.txt
//	notes.txt             -> destRoot/notes.txt
func (p *Planner) Plan(sourceFile, destRoot, delimiter string) (PlannedCopy, error) {
	name := filepath.Base(sourceFile)

	folders, err := FolderSegments(name, delimiter)
	if err != nil {
		return PlannedCopy{}, fmt.Errorf("failed to plan %s: %w", sourceFile, err)
	}

	destFolder := p.Join(append([]string{destRoot}, folders...)...)

	return PlannedCopy{
		SourceFile: sourceFile,
		DestFolder: destFolder,
		DestFile:   p.Join(destFolder, name),
	}, nil
}

// FolderSegments returns the folder levels derived from a base name.
// Empty segments and "." add no level; ".." is rejected.
func FolderSegments(name, delimiter string) ([]string, error) {
	stem, _ := SplitName(name)

	parts := strings.Split(stem, delimiter)
	if len(parts) < 2 { //nolint:mnd // one segment means no folders
		return nil, nil
	}

	folders := make([]string, 0, len(parts)-1)

	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "", ".":
			continue
		case "..":
			return nil, fmt.Errorf("%w: %q in %q", ErrUnsafeSegment, part, name)
		}

		folders = append(folders, part)
	}

	return folders, nil
}

// SplitName splits a base name into stem and extension. The extension starts
// at the last dot, unless that dot is the first or last character:
//
//	report.tar.gz -> report.tar, .gz
//	.bashrc       -> .bashrc, ""
//	notes.        -> notes., ""
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}

	return name[:i], name[i:]
}
