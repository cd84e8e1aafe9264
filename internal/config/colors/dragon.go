package colors

// Dragon returns the Kanagawa dragon color scheme
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		Accent: palette.dragonViolet,

		ColumnBorder:   palette.dragonBlack6,
		CardBorder:     palette.dragonBlack4,
		CardBackground: palette.dragonBlack3,
		SelectedBorder: palette.dragonAqua,
		SelectedBg:     palette.waveBlue1,
		DraggingBorder: palette.dragonYellow,

		Title:  palette.dragonBlue2,
		Subtle: palette.dragonAsh,
		Normal: palette.dragonWhite,

		PriorityHigh:   palette.dragonRed,
		PriorityMedium: palette.dragonYellow,
		PriorityLow:    palette.dragonGreen2,

		SuccessFg: palette.dragonGreen,
		SuccessBg: palette.winterGreen,
		InfoFg:    palette.dragonBlue,
		InfoBg:    palette.winterBlue,
		ErrorFg:   palette.samuraiRed,
		ErrorBg:   palette.winterRed,

		StatusBarBg:   palette.dragonViolet, // Matches accent
		StatusBarText: palette.dragonWhite,  // Matches normal text
	}
}
