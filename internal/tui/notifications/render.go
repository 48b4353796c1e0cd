// Package notifications renders toast-style messages
package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/faena/internal/tui/state"
)

// RenderInline renders a compact single-line notification
func RenderInline(severity Severity, message string) string {
	style := severity.style()

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(style.icon + " " + message)
}

// RenderInlineFromState renders a compact notification from state
func RenderInlineFromState(n state.Notification) string {
	if n.Level == state.LevelError {
		return RenderInline(Error, n.Message)
	}
	return RenderInline(Info, n.Message)
}
