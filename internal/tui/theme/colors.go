package theme

import "github.com/thenoetrevino/funil/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Accent         string
	ColumnBorder   string
	CardBorder     string
	CardBg         string
	SelectedBorder string
	SelectedBg     string
	DraggingBorder string
	Title          string
	Subtle         string
	Normal         string
	PriorityHigh   string
	PriorityMedium string
	PriorityLow    string
	SuccessFg      string
	SuccessBg      string
	InfoFg         string
	InfoBg         string
	ErrorFg        string
	ErrorBg        string
	StatusBarBg    string
	StatusBarText  string
)

func init() {
	Init(*colors.Default())
}

// Init initializes the theme colors from the given color scheme
func Init(c colors.ColorScheme) {
	Accent = c.Accent
	ColumnBorder = c.ColumnBorder
	CardBorder = c.CardBorder
	CardBg = c.CardBackground
	SelectedBorder = c.SelectedBorder
	SelectedBg = c.SelectedBg
	DraggingBorder = c.DraggingBorder
	Title = c.Title
	Subtle = c.Subtle
	Normal = c.Normal
	PriorityHigh = c.PriorityHigh
	PriorityMedium = c.PriorityMedium
	PriorityLow = c.PriorityLow
	SuccessFg = c.SuccessFg
	SuccessBg = c.SuccessBg
	InfoFg = c.InfoFg
	InfoBg = c.InfoBg
	ErrorFg = c.ErrorFg
	ErrorBg = c.ErrorBg
	StatusBarBg = c.StatusBarBg
	StatusBarText = c.StatusBarText
}
