package config

// KeyMappings defines all configurable key bindings.
// Values use bubbletea key names ("space", "enter", "esc", "ctrl+c").
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevCard   string `yaml:"prev_card"`
	NextCard   string `yaml:"next_card"`

	// Dragging
	PickUp     string `yaml:"pick_up"`
	Drop       string `yaml:"drop"`
	CancelDrag string `yaml:"cancel_drag"`

	// Board
	ViewCard      string `yaml:"view_card"`
	NewCard       string `yaml:"new_card"`
	Reload        string `yaml:"reload"`
	DismissBanner string `yaml:"dismiss_banner"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevCard:   "k",
		NextCard:   "j",

		PickUp:     "space",
		Drop:       "enter",
		CancelDrag: "esc",

		ViewCard:      "v",
		NewCard:       "n",
		Reload:        "r",
		DismissBanner: "x",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevCard == "" {
		k.PrevCard = defaults.PrevCard
	}
	if k.NextCard == "" {
		k.NextCard = defaults.NextCard
	}
	if k.PickUp == "" {
		k.PickUp = defaults.PickUp
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.CancelDrag == "" {
		k.CancelDrag = defaults.CancelDrag
	}
	if k.ViewCard == "" {
		k.ViewCard = defaults.ViewCard
	}
	if k.NewCard == "" {
		k.NewCard = defaults.NewCard
	}
	if k.Reload == "" {
		k.Reload = defaults.Reload
	}
	if k.DismissBanner == "" {
		k.DismissBanner = defaults.DismissBanner
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
