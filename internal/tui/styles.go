package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	// Table header styles
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("#FFFFFF"))

	// Selected row style
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFA500")).
				Foreground(lipgloss.Color("#000000"))

	// Account kind styles
	crackedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	premiumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Notice and error styles
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// getKindStyle returns the style for an account kind
func getKindStyle(kind string) lipgloss.Style {
	switch kind {
	case KindCracked:
		return crackedStyle
	case KindPremium:
		return premiumStyle
	default:
		return lipgloss.NewStyle()
	}
}
