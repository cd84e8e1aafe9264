package colors

// Lotus returns the light Kanagawa lotus color scheme
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset: "lotus",

		Accent: palette.lotusViolet4,

		ColumnBorder:   palette.lotusViolet1,
		CardBorder:     palette.lotusWhite4,
		CardBackground: palette.lotusWhite3,
		SelectedBorder: palette.lotusAqua,
		SelectedBg:     palette.lotusBlue1,
		DraggingBorder: palette.lotusOrange2,

		Title:  palette.lotusBlue4,
		Subtle: palette.lotusGray3,
		Normal: palette.lotusInk1,

		PriorityHigh:   palette.lotusRed,
		PriorityMedium: palette.lotusYellow3,
		PriorityLow:    palette.lotusGreen,

		SuccessFg: palette.lotusGreen,
		SuccessBg: palette.lotusGreen3,
		InfoFg:    palette.lotusTeal3,
		InfoBg:    palette.lotusBlue2,
		ErrorFg:   palette.lotusRed3,
		ErrorBg:   palette.lotusRed4,

		StatusBarBg:   palette.lotusViolet4,
		StatusBarText: palette.lotusWhite3,
	}
}
