package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, counters)
	Accent string `yaml:"accent"`

	// Board
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	CardBackground string `yaml:"card_background"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`
	DraggingBorder string `yaml:"dragging_border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Priority badges
	PriorityHigh   string `yaml:"priority_high"`
	PriorityMedium string `yaml:"priority_medium"`
	PriorityLow    string `yaml:"priority_low"`

	// Notification colors (foreground/background pairs)
	SuccessFg string `yaml:"success_fg"`
	SuccessBg string `yaml:"success_bg"`
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
}

// GetPreset returns a preset color scheme by name, falling back to Default
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// Presets lists the preset names accepted by GetPreset
func Presets() []string {
	return []string{"default", "monochrome", "wave", "dragon", "lotus"}
}

// fields lists every color in a fixed order so two schemes can be merged
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent,
		&c.ColumnBorder, &c.CardBorder, &c.CardBackground,
		&c.SelectedBorder, &c.SelectedBg, &c.DraggingBorder,
		&c.Title, &c.Subtle, &c.Normal,
		&c.PriorityHigh, &c.PriorityMedium, &c.PriorityLow,
		&c.SuccessFg, &c.SuccessBg, &c.InfoFg, &c.InfoBg, &c.ErrorFg, &c.ErrorBg,
		&c.StatusBarBg, &c.StatusBarText,
	}
}

// ApplyDefaults fills in missing color values from the named preset,
// keeping any custom values already set.
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
