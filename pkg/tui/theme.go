package tui

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the UI.
type Theme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Prompt lipgloss.Style
	Gap    lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Gap: lipgloss.NewStyle().Padding(0, 1),
	}
}
