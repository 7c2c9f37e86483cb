package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles for CLI output.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Success renders a check-marked success line.
func Success(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// Failure renders a cross-marked error line.
func Failure(message string) string {
	return ErrorStyle.Render("✗ " + message)
}
