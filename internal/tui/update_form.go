package tui

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/notify"
	"github.com/thenoetrevino/funil/internal/tui/components"
	"github.com/thenoetrevino/funil/internal/tui/huhforms"
	"github.com/thenoetrevino/funil/internal/user"
)

const formDescriptionLines = 6

// startCardForm opens the new card form on the focused column. The client
// registry is loaded first when one is wired.
func (m *Model) startCardForm() tea.Cmd {
	if m.creator == nil {
		return nil
	}
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	m.formColumn = col
	if m.clients == nil {
		return m.openCardForm(nil)
	}
	return loadClients(m.ctx, m.clients)
}

func (m *Model) handleClientsLoaded(msg clientsLoadedMsg) tea.Cmd {
	// the user may have started something else while the registry loaded
	if m.mode != modeNormal || m.sync.Active() != nil || m.formColumn == "" {
		return nil
	}
	if msg.err != nil {
		slog.Warn("failed to load clients for the card form", "error", msg.err)
	}
	return m.openCardForm(msg.clients)
}

func (m *Model) openCardForm(clients []*models.Client) tea.Cmd {
	active := make([]*models.Client, 0, len(clients))
	for _, c := range clients {
		if c.Status != models.ClientInactive {
			active = append(active, c)
		}
	}

	m.formValues = huhforms.NewCardFormValues(user.Name())
	m.form = huhforms.NewCardForm(m.formValues, active, formDescriptionLines).
		WithTheme(huhforms.Theme(m.scheme)).
		WithWidth(components.DetailInnerWidth(m.formWidth()))
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) closeCardForm() {
	m.form = nil
	m.formValues = nil
	m.formColumn = ""
	m.mode = modeNormal
}

// updateCardForm hands every message to the open form. Esc cancels and
// ctrl+s submits from any field.
func (m *Model) updateCardForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.mode = modeNormal
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc":
			m.closeCardForm()
			return nil
		case "ctrl+s":
			m.formValues.Confirm = true
			return m.submitCardForm()
		}
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if !m.formValues.Confirm {
			m.closeCardForm()
			return nil
		}
		return m.submitCardForm()
	case huh.StateAborted:
		m.closeCardForm()
		return nil
	}
	return cmd
}

// submitCardForm sends the form's card. Invalid values keep the form open.
func (m *Model) submitCardForm() tea.Cmd {
	req, err := m.formValues.Request(m.formColumn)
	if err != nil {
		m.center.Notify(err.Error(), notify.KindError)
		m.form.State = huh.StateNormal
		return nil
	}
	m.closeCardForm()
	return createCard(m.ctx, m.creator, req)
}

func (m *Model) handleCardCreated(msg cardCreatedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Warn("failed to create card", "error", msg.err)
		m.center.Notify(MsgCreateFailed, notify.KindError)
		return nil
	}
	slog.Info("card created from the board", "card_id", msg.card.ID, "column", msg.card.Column)
	m.center.Notify(fmt.Sprintf("Cartão criado: %s", msg.card.Title), notify.KindSuccess)
	m.selectAfterLoad = msg.card.ID
	return loadBoard(m.sync, reloadAfterCreate)
}

func (m *Model) formWidth() int {
	return min(max(m.width/2, 50), m.width)
}
