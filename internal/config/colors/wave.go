package colors

// Wave returns the Kanagawa wave color scheme
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: palette.oniViolet,

		ColumnBorder:   palette.sumiInk6,
		CardBorder:     palette.sumiInk4,
		CardBackground: palette.sumiInk3,
		SelectedBorder: palette.waveAqua2,
		SelectedBg:     palette.waveBlue1,
		DraggingBorder: palette.carpYellow,

		Title:  palette.crystalBlue,
		Subtle: palette.fujiGray,
		Normal: palette.fujiWhite,

		PriorityHigh:   palette.peachRed,
		PriorityMedium: palette.carpYellow,
		PriorityLow:    palette.springGreen,

		SuccessFg: palette.springGreen,
		SuccessBg: palette.winterGreen,
		InfoFg:    palette.dragonBlue,
		InfoBg:    palette.winterBlue,
		ErrorFg:   palette.samuraiRed,
		ErrorBg:   palette.winterRed,

		StatusBarBg:   palette.oniViolet,
		StatusBarText: palette.fujiWhite,
	}
}
