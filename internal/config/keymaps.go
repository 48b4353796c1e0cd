package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Lists
	Search        string `yaml:"search"`
	CycleStatus   string `yaml:"cycle_status"`
	CycleSort     string `yaml:"cycle_sort"`
	CyclePriority string `yaml:"cycle_priority"`
	Reload        string `yaml:"reload"`

	// Project detail
	EditStatus    string `yaml:"edit_status"`
	ToggleMembers string `yaml:"toggle_members"`

	// Members panel
	PrevMember    string `yaml:"prev_member"`
	NextMember    string `yaml:"next_member"`
	RemoveMember  string `yaml:"remove_member"`
	PromoteMember string `yaml:"promote_member"`

	// Navigation
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
	Open string `yaml:"open"`
	Back string `yaml:"back"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Search:        "/",
		CycleStatus:   "f",
		CycleSort:     "s",
		CyclePriority: "p",
		Reload:        "r",

		EditStatus:    "e",
		ToggleMembers: "m",

		PrevMember:    "[",
		NextMember:    "]",
		RemoveMember:  "x",
		PromoteMember: "R",

		Up:   "k",
		Down: "j",
		Open: "enter",
		Back: "esc",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&k.Search, defaults.Search)
	fill(&k.CycleStatus, defaults.CycleStatus)
	fill(&k.CycleSort, defaults.CycleSort)
	fill(&k.CyclePriority, defaults.CyclePriority)
	fill(&k.Reload, defaults.Reload)
	fill(&k.EditStatus, defaults.EditStatus)
	fill(&k.ToggleMembers, defaults.ToggleMembers)
	fill(&k.PrevMember, defaults.PrevMember)
	fill(&k.NextMember, defaults.NextMember)
	fill(&k.RemoveMember, defaults.RemoveMember)
	fill(&k.PromoteMember, defaults.PromoteMember)
	fill(&k.Up, defaults.Up)
	fill(&k.Down, defaults.Down)
	fill(&k.Open, defaults.Open)
	fill(&k.Back, defaults.Back)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
