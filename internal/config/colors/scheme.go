package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Selected list row
	SelectedFg string `yaml:"selected_fg"`
	SelectedBg string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Project status badges
	StatusActive    string `yaml:"status_active"`
	StatusOnHold    string `yaml:"status_on_hold"`
	StatusCompleted string `yaml:"status_completed"`

	// Task priorities
	PriorityLow      string `yaml:"priority_low"`
	PriorityMedium   string `yaml:"priority_medium"`
	PriorityHigh     string `yaml:"priority_high"`
	PriorityCritical string `yaml:"priority_critical"`

	// Notification colors (foreground/background pairs)
	InfoFg  string `yaml:"info_fg"`
	InfoBg  string `yaml:"info_bg"`
	ErrorFg string `yaml:"error_fg"`
	ErrorBg string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// fields lists every color slot so merging and defaulting stay in sync
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.SelectedFg, &c.SelectedBg,
		&c.Title, &c.Subtle, &c.Normal,
		&c.StatusActive, &c.StatusOnHold, &c.StatusCompleted,
		&c.PriorityLow, &c.PriorityMedium, &c.PriorityHigh, &c.PriorityCritical,
		&c.InfoFg, &c.InfoBg, &c.ErrorFg, &c.ErrorBg,
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	dst, src := c.fields(), preset.fields()
	for i := range dst {
		if *dst[i] == "" {
			*dst[i] = *src[i]
		}
	}
}

// MergeFrom overrides colors with the non-empty values of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	dst, src := c.fields(), other.fields()
	for i := range dst {
		if *src[i] != "" {
			*dst[i] = *src[i]
		}
	}
}
