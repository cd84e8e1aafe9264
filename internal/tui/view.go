package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/reorder"
	"github.com/thenoetrevino/funil/internal/tui/components"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

const (
	titleText   = "funil · pipeline de vendas"
	columnGap   = 1
	chromeLines = 2 // title bar and status bar

	// detailChrome is what the detail pane needs around its viewport
	detailChrome = chromeLines + 6
)

// View renders the board with its overlays and banners
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.ReportFocus = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	layers := []*lipgloss.Layer{lipgloss.NewLayer(m.renderBase())}

	switch m.mode {
	case modeDetail:
		if card := m.currentCard(); card != nil {
			w := m.layoutDetail(card)
			layers = append(layers, centeredLayer(components.RenderDetailFrame(m.detail.View(), w), m.width, m.height))
		}
	case modeForm:
		if m.form != nil {
			heading := "Novo cartão em " + m.formColumn.Title()
			layers = append(layers, centeredLayer(components.RenderFormFrame(heading, m.form.View(), m.formWidth()), m.width, m.height))
		}
	case modeHelp:
		layers = append(layers, centeredLayer(m.renderHelp(), m.width, m.height))
	}

	if items := m.center.Active(); len(items) > 0 {
		banners := components.RenderBanners(items)
		x := max(m.width-lipgloss.Width(banners)-1, 0)
		layers = append(layers, lipgloss.NewLayer(banners).X(x).Y(1).Z(10))
	}

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// renderBase draws the title bar, the columns and the status bar
func (m *Model) renderBase() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Width(m.width).
		Render(" " + titleText)

	var board string
	cols := m.columns()
	if !m.loaded && len(cols) == 0 {
		board = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Padding(1, 2).
			Render("Carregando quadro...")
	} else {
		board = m.renderColumns()
	}

	status := components.RenderStatusBar(components.StatusProps{
		Mode:     m.modeName(),
		State:    m.sync.State().String(),
		InFlight: m.sync.InFlight(),
		Stale:    m.sync.Stale(),
		Live:     m.live,
		Width:    m.width,
	})

	// keep the status bar on screen however tall the columns are
	lines := strings.Split(board, "\n")
	if limit := max(m.height-chromeLines, 1); len(lines) > limit {
		lines = lines[:limit]
	}
	return title + "\n" + strings.Join(lines, "\n") + "\n" + status
}

func (m *Model) renderColumns() string {
	cols := m.columns()
	if len(cols) == 0 {
		return ""
	}

	b := m.sync.Board()
	width := max((m.width-columnGap*(len(cols)-1))/len(cols), 12)
	height := max(m.height-chromeLines, 6)

	dragging := ""
	if g := m.sync.Active(); g != nil {
		dragging = g.CardID()
	}

	rendered := make([]string, 0, len(cols)*2)
	for i, col := range cols {
		selected := -1
		if i == m.selectedCol {
			selected = m.selectedCard
		}
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Header:      b.Header(col),
			Cards:       b.Cards(col),
			Focused:     i == m.selectedCol,
			SelectedIdx: selected,
			DraggingID:  dragging,
			Width:       width,
			Height:      height,
		}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) modeName() string {
	if m.sync.State() == reorder.StateDragging {
		return "ARRASTANDO"
	}
	switch m.mode {
	case modeDetail:
		return "DETALHE"
	case modeHelp:
		return "AJUDA"
	case modeForm:
		return "NOVO"
	default:
		return "NORMAL"
	}
}

func (m *Model) renderHelp() string {
	k := m.keys
	key := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent))
	row := func(keys, desc string) string {
		return key.Render(keys) + "  " + desc
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render("Atalhos"),
		"",
		row(k.PrevColumn+"/"+k.NextColumn, "coluna anterior / próxima"),
		row(k.PrevCard+"/"+k.NextCard, "cartão anterior / próximo"),
		row(k.PickUp, "pegar cartão"),
		row(k.ViewCard, "ver detalhes"),
		row(k.NewCard, "novo cartão"),
		row(k.Reload, "recarregar quadro"),
		row(k.DismissBanner, "fechar aviso"),
		row(k.Quit, "sair"),
		"",
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render("Arrastando"),
		"",
		row(k.PrevColumn+"/"+k.NextColumn, "levar para outra coluna"),
		row(k.PrevCard+"/"+k.NextCard, "reordenar na coluna"),
		row(k.Drop, "soltar"),
		row(k.CancelDrag, "cancelar"),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// layoutDetail sizes the detail viewport for card and fills it. It
// returns the width of the whole pane.
func (m *Model) layoutDetail(card *models.Card) int {
	w := min(max(m.width*2/3, 40), m.width)
	inner := components.DetailInnerWidth(w)
	body := components.RenderDetailBody(card, inner)

	m.detail.SetWidth(inner)
	m.detail.SetHeight(max(min(lipgloss.Height(body), m.height-detailChrome), 3))
	m.detail.SetContent(body)
	return w
}

// centeredLayer places content in the middle of the screen
func centeredLayer(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(5)
}
