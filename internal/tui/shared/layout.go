package shared

import "github.com/charmbracelet/lipgloss"

// RenderWidgetBox renders content in a titled box with borders.
// Width accounts for padding (width - 4 for borders and padding); a width
// of 0 lets the box size to its content.
func RenderWidgetBox(title, content string, width int) string {
	const widthOverhead = 4 // borders (2) and padding (2)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor())

	boxStyle := BoxStyle()
	if width > widthOverhead {
		boxStyle = boxStyle.Width(width - widthOverhead)
	}

	return boxStyle.Render(titleStyle.Render(title) + "\n" + content)
}

// RenderModal renders a titled prompt box that stands out from the screen behind it.
func RenderModal(title, content string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(WarningColor())

	return ModalStyle().Render(titleStyle.Render(title) + "\n\n" + content)
}
