package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Timeline phase keys.
const (
	PhaseKeyTerms    = "terms"
	PhaseKeyInput    = "input"
	PhaseKeyOrganize = "organize"
	PhaseKeyDone     = "done"
)

// RenderTimeline renders the phase progression shown at the top of every screen.
// Phases before the current one show ✓, the current one ◉ and later ones ○.
// A key with an "_error" suffix (e.g. "organize_error") marks that phase ✗
// and the remaining ones ⊘.
func RenderTimeline(currentPhase string) string {
	phase := strings.ToLower(strings.TrimSpace(currentPhase))

	isError := strings.HasSuffix(phase, "_error")
	if isError {
		phase = strings.TrimSuffix(phase, "_error")
	}

	phases := []struct {
		name string
		key  string
	}{
		{"Terms", PhaseKeyTerms},
		{"Folders", PhaseKeyInput},
		{"Organize", PhaseKeyOrganize},
		{"Done", PhaseKeyDone},
	}

	currentIdx := 0

	for i, p := range phases {
		if p.key == phase {
			currentIdx = i
			break
		}
	}

	parts := make([]string, 0, len(phases))

	for i, p := range phases {
		var (
			symbol string
			style  lipgloss.Style
		)

		switch {
		case isError && i == currentIdx:
			symbol = ErrorSymbol()
			style = lipgloss.NewStyle().Foreground(ErrorColor())
		case isError && i > currentIdx:
			symbol = CancelledSymbol()
			style = DimStyle()
		case i < currentIdx, i == len(phases)-1 && i == currentIdx:
			// "done" is complete as soon as it is reached
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		case i == currentIdx:
			symbol = ActiveSymbol()
			style = lipgloss.NewStyle().Foreground(PrimaryColor())
		default:
			symbol = PendingSymbol()
			style = DimStyle()
		}

		parts = append(parts, style.Render(symbol+" "+p.name))
	}

	return strings.Join(parts, DimStyle().Render(" ── "))
}
