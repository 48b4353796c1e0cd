package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/tui/theme"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))
}

func accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent))
}

func subtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
}

func normalStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SelectedFg)).
		Background(lipgloss.Color(theme.SelectedBg))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorFg))
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1)
}

func renderStatus(s models.ProjectStatus) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Status(s))).Render(s.Label())
}

func renderPriority(p models.Priority) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Priority(p))).Render(string(p))
}
