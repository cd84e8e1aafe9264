package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

// ColumnProps describes how one pipeline column is drawn.
// Header is the column's header text, including its "(N)" counter.
type ColumnProps struct {
	Header      string
	Cards       []*models.Card
	Focused     bool
	SelectedIdx int // -1 when no card of this column is selected
	DraggingID  string
	Width       int
	Height      int
}

// visibleWindow returns the first and last+1 card index to draw so that
// the selected card stays on screen.
func visibleWindow(total, selected, fit int) (int, int) {
	if total <= fit {
		return 0, total
	}
	start := 0
	if selected >= fit {
		start = selected - fit + 1
	}
	return start, min(start+fit, total)
}

// RenderColumn renders a column with its header and the cards that fit
//
// Layout:
//
//	{Header}
//	▲ (if scrolled down)
//	{Card 1}
//	...
//	▼ (if more cards below)
func RenderColumn(props ColumnProps) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))
	if props.Focused {
		headerStyle = headerStyle.Foreground(lipgloss.Color(theme.Accent)).Underline(true)
	}
	content := headerStyle.Render(props.Header) + "\n"

	indicator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))
	cardWidth := max(props.Width-2, 8)

	if len(props.Cards) == 0 {
		content += "\n" + indicator.Italic(true).Render("Nenhum cartão")
	} else {
		fit := max((props.Height-columnOverhead)/CardHeight, 1)
		start, end := visibleWindow(len(props.Cards), max(props.SelectedIdx, 0), fit)

		if start > 0 {
			content += indicator.Render("▲ mais acima") + "\n"
		} else {
			content += "\n"
		}
		for i := start; i < end; i++ {
			card := props.Cards[i]
			content += RenderCard(CardProps{
				Card:     card,
				Selected: props.Focused && i == props.SelectedIdx,
				Dragging: card.ID == props.DraggingID,
				Width:    cardWidth,
			}) + "\n"
		}
		if end < len(props.Cards) {
			content += indicator.Render("▼ mais abaixo")
		}
	}

	border := theme.ColumnBorder
	if props.Focused {
		border = theme.Accent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(props.Width)
	if props.Height > 0 {
		style = style.Height(props.Height)
	}
	return style.Render(content)
}
