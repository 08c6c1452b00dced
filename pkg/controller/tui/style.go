// Package tui is the terminal rendition of the readiness checker and the
// compliance assistant.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3CCB7F"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2F5FD0")).
			Padding(0, 1)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A524"))
)

// bandStyle colors a readiness band
func bandStyle(band string) lipgloss.Style {
	switch band {
	case "good":
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3CCB7F"))
	case "moderate":
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A524"))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	}
}
