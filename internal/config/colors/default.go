package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent:     "#874BFD",
		SelectedFg: "#FFFFFF",
		SelectedBg: "#3A3A3A",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		StatusActive:    "#5FD75F",
		StatusOnHold:    "#FFD700",
		StatusCompleted: "#5F87D7",

		PriorityLow:      "#585858",
		PriorityMedium:   "#5F87D7",
		PriorityHigh:     "#FFAF00",
		PriorityCritical: "#FF0000",

		InfoFg:  "#00AFFF",
		InfoBg:  "#00005F",
		ErrorFg: "#FF0000",
		ErrorBg: "#5F0000",
	}
}
