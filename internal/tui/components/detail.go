package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/cli/styles"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

// DetailHint is the footer of the detail pane
const DetailHint = "j/k: rolar  esc: fechar"

// RenderDetailBody renders the card metadata followed by the description
// as markdown, wrapped to width.
func RenderDetailBody(card *models.Card, width int) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	row := func(k, v string) string {
		return label.Render(k+":") + " " + value.Render(v)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render(card.Title),
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(card.ID),
		"",
		row("Coluna", card.Column.Title()),
		row("Prioridade", string(card.Priority)),
	}
	if card.ClientName != "" {
		client := card.ClientName
		if card.ClientID != nil {
			client = fmt.Sprintf("%s (#%d)", client, *card.ClientID)
		}
		lines = append(lines, row("Cliente", client))
	}
	if card.AssignedTo != "" {
		lines = append(lines, row("Responsável", card.AssignedTo))
	}
	if card.Value > 0 {
		lines = append(lines, row("Valor", styles.FormatValue(card.Value)))
	}
	if card.DueDate != nil {
		lines = append(lines, row("Prazo", card.DueDate.Format("2006-01-02")))
	}
	if !card.UpdatedAt.IsZero() {
		lines = append(lines, row("Atualizado", card.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
	lines = append(lines, "", RenderDescription(card.Description, max(width, 20)))

	return strings.Join(lines, "\n")
}

// DetailInnerWidth is the text width left inside a detail frame
func DetailInnerWidth(width int) int {
	return max(width-4, 20)
}

// RenderDetailFrame draws the border and footer around the scrolled body
func RenderDetailFrame(body string, width int) string {
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(DetailHint)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1).
		Width(width).
		Render(body + "\n\n" + footer)
}

// RenderFormFrame draws the border, heading and footer around a form
func RenderFormFrame(heading, form string, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render(heading)
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("tab: próximo campo  ctrl+s: salvar  esc: cancelar")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1).
		Width(width).
		Render(title + "\n\n" + form + "\n" + footer)
}

// StatusProps is what the status bar reports
type StatusProps struct {
	Mode     string
	State    string
	InFlight int
	Stale    bool
	Live     bool
	Width    int
}

// RenderStatusBar renders the bottom status line
func RenderStatusBar(p StatusProps) string {
	parts := []string{" " + p.Mode, p.State}
	if p.InFlight > 0 {
		parts = append(parts, fmt.Sprintf("%d pendente(s)", p.InFlight))
	}
	if p.Stale {
		parts = append(parts, "⚠ quadro desatualizado")
	}
	if p.Live {
		parts = append(parts, "● ao vivo")
	}
	parts = append(parts, "?: ajuda")

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarText)).
		Background(lipgloss.Color(theme.StatusBarBg)).
		Width(p.Width).
		MaxHeight(1).
		Render(strings.Join(parts, "  │  "))
}
