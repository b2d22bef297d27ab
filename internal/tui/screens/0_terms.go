package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/organize-files/internal/tui/shared"
)

// TermsText is shown before the first run of an interactive session.
const TermsText = `DISCLAIMER AND LIMITED LIABILITY

By using this software, you acknowledge and agree that:

1. This software is provided "AS IS" without warranty of any kind, either
   express or implied, including the implied warranties of merchantability
   and fitness for a particular purpose.

2. The authors shall not be liable for any direct, indirect, incidental,
   special or consequential damages, including loss of data, arising in
   any way out of the use of this software.

3. You are responsible for file selection, backups and data integrity.
   Keep backups of your files before using this software.

4. This software copies files and may overwrite or rename files in the
   destination based on your choices. You accept full responsibility for
   the results.`

// TermsScreen asks the user to accept the terms of use
type TermsScreen struct {
	width int
}

// NewTermsScreen creates a new terms screen
func NewTermsScreen() *TermsScreen {
	return &TermsScreen{}
}

// Init implements tea.Model
func (s TermsScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s TermsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "a", "enter":
			return s, func() tea.Msg { return shared.TermsAcceptedMsg{} }
		case "n", "d", "q", "esc", shared.KeyCtrlC:
			return s, func() tea.Msg { return shared.TermsDeclinedMsg{} }
		}
	}

	return s, nil
}

// View implements tea.Model
func (s TermsScreen) View() string {
	body := TermsText
	if s.width > 0 {
		body = lipgloss.NewStyle().Width(min(s.width-shared.InputWidthMargin, shared.MaxProgressBarWidth)).Render(body)
	}

	content := shared.RenderTitle("Terms of Use") + "\n" +
		body + "\n\n" +
		shared.RenderSubtitle("y/Enter to accept • n/Esc to decline")

	return shared.RenderBox(content)
}
