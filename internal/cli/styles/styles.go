package styles

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/config/colors"
	"github.com/thenoetrevino/faena/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Start:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "Members"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	scheme colors.ColorScheme
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	scheme = c

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.ErrorFg)).
		Background(lipgloss.Color(c.ErrorBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// StatusColor returns the badge color for a project status
func StatusColor(status models.ProjectStatus) string {
	switch status {
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

// PriorityColor returns the color for a task priority
func PriorityColor(p models.Priority) string {
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

// RenderStatus renders a project status as a colored label
func RenderStatus(status models.ProjectStatus) string {
	return BoldColoredText(status.Label(), StatusColor(status))
}

// RenderPriority renders a task priority in its color
func RenderPriority(p models.Priority) string {
	return BoldColoredText(string(p), PriorityColor(p))
}

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a markdown description, falling back to the raw text
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return SubtitleStyle.Italic(true).Render("No description")
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}
