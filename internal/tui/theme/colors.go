// Package theme holds the colors the TUI renders with
package theme

import (
	"github.com/thenoetrevino/faena/internal/config/colors"
	"github.com/thenoetrevino/faena/internal/models"
)

// Colors holds the current theme colors, initialized by Init
var (
	Accent     string
	Title      string
	Subtle     string
	Normal     string
	SelectedFg string
	SelectedBg string
	InfoFg     string
	InfoBg     string
	ErrorFg    string
	ErrorBg    string

	scheme colors.ColorScheme
)

func init() {
	Init(*colors.GetPreset(""))
}

// Init initializes the theme colors from the given color scheme
func Init(c colors.ColorScheme) {
	scheme = c
	Accent = c.Accent
	Title = c.Title
	Subtle = c.Subtle
	Normal = c.Normal
	SelectedFg = c.SelectedFg
	SelectedBg = c.SelectedBg
	InfoFg = c.InfoFg
	InfoBg = c.InfoBg
	ErrorFg = c.ErrorFg
	ErrorBg = c.ErrorBg
}

// Status returns the color of a project status
func Status(s models.ProjectStatus) string {
	switch s {
	case models.ProjectActive:
		return scheme.StatusActive
	case models.ProjectOnHold:
		return scheme.StatusOnHold
	case models.ProjectCompleted:
		return scheme.StatusCompleted
	default:
		return scheme.Subtle
	}
}

// Priority returns the color of a task priority
func Priority(p models.Priority) string {
	switch p.Rank() {
	case 3:
		return scheme.PriorityCritical
	case 2:
		return scheme.PriorityHigh
	case 1:
		return scheme.PriorityMedium
	default:
		return scheme.PriorityLow
	}
}
