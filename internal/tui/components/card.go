package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

// CardProps describes how one card is drawn
type CardProps struct {
	Card     *models.Card
	Selected bool
	Dragging bool
	Width    int
}

func priorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.PriorityMedium
	}
}

// RenderCard renders a card box: title, client and a priority badge
func RenderCard(props CardProps) string {
	inner := max(props.Width-4, 4)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Normal)).
		MaxWidth(inner).
		Render(props.Card.Title)

	client := props.Card.ClientName
	if client == "" {
		client = "-"
	}
	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		MaxWidth(inner).
		Render(client)

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(priorityColor(props.Card.Priority))).
		Render("● " + string(props.Card.Priority))

	border := theme.CardBorder
	bg := theme.CardBg
	switch {
	case props.Dragging:
		border = theme.DraggingBorder
		bg = theme.SelectedBg
	case props.Selected:
		border = theme.SelectedBorder
		bg = theme.SelectedBg
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Width(props.Width)
	if props.Dragging {
		box = box.Border(lipgloss.DoubleBorder())
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, subtitle, badge))
}
