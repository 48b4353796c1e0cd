package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent:     "#FFFFFF",
		SelectedFg: "#000000",
		SelectedBg: "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		StatusActive:    "#FFFFFF",
		StatusOnHold:    "#D0D0D0",
		StatusCompleted: "#585858",

		PriorityLow:      "#585858",
		PriorityMedium:   "#D0D0D0",
		PriorityHigh:     "#FFFFFF",
		PriorityCritical: "#FFFFFF",

		InfoFg:  "#FFFFFF",
		InfoBg:  "#1C1C1C",
		ErrorFg: "#FFFFFF",
		ErrorBg: "#585858",
	}
}
