package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/config/colors"
	"github.com/thenoetrevino/funil/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Cliente:", "Prioridade:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For column headings

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	priorityStyles map[models.Priority]lipgloss.Style
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.CardBorder)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.SuccessFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.ErrorFg))

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.PriorityHigh)),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(c.PriorityMedium)),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.PriorityLow)),
	}
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderCard renders the full detail of one card
func RenderCard(card *models.Card) string {
	lines := []string{
		TitleStyle.Render(card.Title),
		SubtitleStyle.Render(card.ID),
		"",
		field("Coluna", card.Column.Title()),
		LabelStyle.Render("Prioridade:") + " " + priorityStyles[card.Priority].Render(string(card.Priority)),
	}
	if card.ClientName != "" {
		name := card.ClientName
		if card.ClientID != nil {
			name += fmt.Sprintf(" (#%d)", *card.ClientID)
		}
		lines = append(lines, field("Cliente", name))
	}
	if card.AssignedTo != "" {
		lines = append(lines, field("Responsável", card.AssignedTo))
	}
	if card.Value > 0 {
		lines = append(lines, field("Valor", FormatValue(card.Value)))
	}
	if card.DueDate != nil {
		lines = append(lines, field("Prazo", card.DueDate.Format("2006-01-02")))
	}
	if card.Description != "" {
		lines = append(lines, "", ValueStyle.Render(card.Description))
	}
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// RenderClient renders the registry entry of one client
func RenderClient(c *models.Client) string {
	lines := []string{
		TitleStyle.Render(c.Name),
		SubtitleStyle.Render(fmt.Sprintf("#%d · %s", c.ID, c.Status)),
		"",
	}
	if c.Document != "" {
		lines = append(lines, field("CPF/CNPJ", models.FormatDocument(c.Document)))
	}
	if c.Email != "" {
		lines = append(lines, field("Email", c.Email))
	}
	if c.Phone != "" {
		lines = append(lines, field("Telefone", c.Phone))
	}
	if c.Address != "" {
		lines = append(lines, field("Endereço", c.Address))
	}
	if c.InsuranceType != "" {
		lines = append(lines, field("Seguro", c.InsuranceType))
	}
	if c.Notes != "" {
		lines = append(lines, "", ValueStyle.Render(c.Notes))
	}
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// RenderClientList renders one line per client
func RenderClientList(clients []*models.Client) string {
	if len(clients) == 0 {
		return SubtitleStyle.Render("Nenhum cliente")
	}
	lines := make([]string, 0, len(clients))
	for _, c := range clients {
		line := fmt.Sprintf("%s  %s", SubtitleStyle.Render(fmt.Sprintf("#%d", c.ID)), ValueStyle.Render(c.Name))
		if c.Document != "" {
			line += "  " + SubtitleStyle.Render(models.FormatDocument(c.Document))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderCardList renders one line per card
func RenderCardList(cards []*models.Card) string {
	if len(cards) == 0 {
		return SubtitleStyle.Render("Nenhum cartão")
	}
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			SubtitleStyle.Render(card.ID),
			ValueStyle.Render(card.Title),
			priorityStyles[card.Priority].Render(string(card.Priority))))
	}
	return strings.Join(lines, "\n")
}

// RenderBoard renders every column with its count and cards
func RenderBoard(snap models.BoardSnapshot) string {
	sections := make([]string, 0, len(snap.Columns))
	for _, cc := range snap.Columns {
		heading := SectionStyle.Render(fmt.Sprintf("%s (%d)", cc.Column.Title(), len(cc.Cards)))
		sections = append(sections, heading)
		for _, card := range cc.Cards {
			sections = append(sections, "  "+ValueStyle.Render(card.Title)+" "+SubtitleStyle.Render(card.ID))
		}
	}
	return strings.Join(sections, "\n")
}

// RenderStats renders pipeline counters in board order
func RenderStats(stats models.PipelineStats) string {
	lines := make([]string, 0, len(stats.ByColumn)+2)
	for _, col := range models.Columns() {
		lines = append(lines, field(col.Title(), fmt.Sprintf("%d", stats.ByColumn[col])))
	}
	lines = append(lines,
		field("Total", fmt.Sprintf("%d", stats.Total)),
		field("Valor", FormatValue(stats.Value)))
	return strings.Join(lines, "\n")
}

// FormatValue formats a deal value with two decimals and thousands separators
func FormatValue(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
