package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cryptopro-lab/cryptopro-client/internal/dashboard"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// SuccessStyle for confirmation messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// ActiveTabStyle for the selected tab label.
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// TabStyle for inactive tab labels.
	TabStyle = lipgloss.NewStyle().Faint(true)
)

// RenderNotification renders a toast-style status line for a notification.
func RenderNotification(n dashboard.Notification) string {
	text := n.Title + ": " + n.Description

	if n.Variant == dashboard.VariantDestructive {
		return ErrorStyle.Render(text)
	}

	return SuccessStyle.Render(text)
}
