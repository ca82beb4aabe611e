// Package output renders styled terminal output for the CLI.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)
	cardTitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

// Success prints a success message.
func Success(format string, args ...any) {
	fmt.Print(successStyle.Render("✓ "))
	fmt.Printf(format+"\n", args...)
}

// Warning prints a warning message.
func Warning(format string, args ...any) {
	fmt.Print(warningStyle.Render("⚠ "))
	fmt.Printf(format+"\n", args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	fmt.Print(errorStyle.Render("✗ "))
	fmt.Printf(format+"\n", args...)
}

// Muted prints a de-emphasized message.
func Muted(format string, args ...any) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Header prints a section heading.
func Header(text string) {
	fmt.Println(headerStyle.Render(text))
}

// Card renders one dashboard stat card.
func Card(title, value string) string {
	return cardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			cardTitleStyle.Render(title),
			cardValueStyle.Render(value),
		),
	)
}

// Cards renders stat cards side by side.
func Cards(cards ...string) {
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}
