package tui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/notify"
	"github.com/thenoetrevino/funil/internal/tui/components"
)

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if card := m.currentCard(); card != nil && m.mode == modeDetail {
			m.layoutDetail(card)
		}
		if m.form != nil {
			m.form = m.form.WithWidth(components.DetailInnerWidth(m.formWidth()))
		}
		return m, nil

	case tea.FocusMsg:
		m.sync.Activate()
		return m, nil

	case tea.BlurMsg:
		m.sync.Deactivate()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case moveResolvedMsg:
		return m, m.handleMoveResolved(msg)

	case boardLoadedMsg:
		m.handleBoardLoaded(msg)
		return m, nil

	case pollTickMsg:
		cmds := []tea.Cmd{listenForTicks(m.ctx, m.sync.Poller().Ticks())}
		if m.sync.ShouldPoll() {
			cmds = append(cmds, loadBoard(m.sync, reloadPoll))
		} else {
			slog.Debug("skipping poll while a move is open", "state", m.sync.State())
		}
		return m, tea.Batch(cmds...)

	case pushEventMsg:
		return m, tea.Batch(m.handlePush(msg.event), listenForPush(m.ctx, m.push))

	case pushClosedMsg:
		m.live = false
		m.push = nil
		if !m.quitting {
			m.center.Notify(MsgLiveStopped, notify.KindInfo)
		}
		return m, nil

	case bannersChangedMsg:
		return m, listenForBanners(m.ctx, m.changes)

	case clientsLoadedMsg:
		return m, m.handleClientsLoaded(msg)

	case cardCreatedMsg:
		return m, m.handleCardCreated(msg)
	}

	// huh and the viewport run on their own messages too
	switch m.mode {
	case modeForm:
		return m, m.updateCardForm(msg)
	case modeDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ============================================================================
// Keys
// ============================================================================

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.mode == modeForm {
		return m.updateCardForm(msg)
	}

	if m.sync.Active() != nil {
		return m.handleDragKey(key)
	}

	switch m.mode {
	case modeHelp:
		switch key {
		case "esc", m.keys.ShowHelp, m.keys.Quit:
			m.mode = modeNormal
		case m.keys.DismissBanner:
			m.center.DismissLatest()
		}
		return nil

	case modeDetail:
		switch key {
		case "esc", m.keys.ViewCard, m.keys.Quit:
			m.mode = modeNormal
		case m.keys.DismissBanner:
			m.center.DismissLatest()
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return cmd
		}
		return nil
	}

	return m.handleNormalKey(key)
}

func (m *Model) handleNormalKey(key string) tea.Cmd {
	switch key {
	case m.keys.Quit:
		return m.quit()

	case m.keys.ShowHelp:
		m.mode = modeHelp

	case m.keys.PrevColumn, "left":
		m.selectedCol--
		m.clampSelection()

	case m.keys.NextColumn, "right":
		m.selectedCol++
		m.clampSelection()

	case m.keys.PrevCard, "up":
		m.selectedCard--
		m.clampSelection()

	case m.keys.NextCard, "down":
		m.selectedCard++
		m.clampSelection()

	case m.keys.PickUp:
		card := m.currentCard()
		if card == nil {
			return nil
		}
		if _, err := m.sync.BeginDrag(card.ID); err != nil {
			slog.Warn("failed to pick up card", "card_id", card.ID, "error", err)
		}

	case m.keys.ViewCard, "enter":
		if card := m.currentCard(); card != nil {
			m.mode = modeDetail
			m.layoutDetail(card)
			m.detail.GotoTop()
		}

	case m.keys.NewCard:
		return m.startCardForm()

	case m.keys.Reload:
		return loadBoard(m.sync, reloadManual)

	case m.keys.DismissBanner:
		m.center.DismissLatest()
	}
	return nil
}

// handleDragKey carries, drops or cancels the held card. Every carry
// step changes the board at once; only the drop talks to the server.
func (m *Model) handleDragKey(key string) tea.Cmd {
	g := m.sync.Active()
	id := g.CardID()
	b := m.sync.Board()

	col, idx, ok := b.Locate(id)
	if !ok {
		return nil
	}

	switch key {
	case m.keys.CancelDrag:
		if err := m.sync.CancelDrag(); err != nil {
			slog.Warn("failed to cancel drag", "card_id", id, "error", err)
		}
		m.selectCard(id)
		return nil

	case m.keys.Drop, m.keys.PickUp:
		p, err := m.sync.Release()
		if err != nil {
			slog.Warn("drop refused", "card_id", id, "error", err)
			m.clampSelection()
			return nil
		}
		m.selectCard(id)
		return waitForMove(p)

	case m.keys.PrevColumn, "left", m.keys.NextColumn, "right":
		step := 1
		if key == m.keys.PrevColumn || key == "left" {
			step = -1
		}
		cols := b.Columns()
		i := indexOf(cols, col) + step
		if i < 0 || i >= len(cols) {
			return nil
		}
		m.carry(id, cols[i], min(idx, b.Count(cols[i])))

	case m.keys.PrevCard, "up":
		if idx > 0 {
			m.carry(id, col, idx-1)
		}

	case m.keys.NextCard, "down":
		if idx < b.Count(col)-1 {
			m.carry(id, col, idx+1)
		}
	}
	return nil
}

func (m *Model) carry(id string, target models.Column, index int) {
	if err := m.sync.Carry(target, index); err != nil {
		slog.Warn("failed to carry card", "card_id", id, "column", target, "error", err)
		return
	}
	m.selectCard(id)
}

func indexOf(cols []models.Column, c models.Column) int {
	for i, col := range cols {
		if col == c {
			return i
		}
	}
	return -1
}

// ============================================================================
// Results
// ============================================================================

func (m *Model) handleMoveResolved(msg moveResolvedMsg) tea.Cmd {
	res := m.sync.Reconcile(msg.outcome)
	if res.Reload {
		return loadBoard(m.sync, reloadAfterMove)
	}
	return nil
}

func (m *Model) handleBoardLoaded(msg boardLoadedMsg) {
	selected := ""
	if card := m.currentCard(); card != nil {
		selected = card.ID
	}

	m.sync.ApplySnapshot(msg.snapshot, msg.err)
	if msg.err != nil {
		// move-triggered reloads were already reported by the move
		if msg.reason == reloadInitial || msg.reason == reloadManual {
			m.center.Notify(MsgLoadFailed, notify.KindError)
		}
		slog.Warn("board load failed", "reason", msg.reason, "error", msg.err)
		return
	}

	m.loaded = true
	if msg.reason == reloadAfterCreate && m.selectAfterLoad != "" {
		selected, m.selectAfterLoad = m.selectAfterLoad, ""
	}
	if selected != "" {
		m.selectCard(selected)
	} else {
		m.clampSelection()
	}
}

func (m *Model) handlePush(e events.Event) tea.Cmd {
	switch e.Type {
	case events.EventCardMoved:
		col, err := models.ParseColumn(e.Column)
		if err != nil {
			slog.Debug("ignoring push move to unknown column", "card_id", e.CardID, "column", e.Column)
			return nil
		}
		selected := m.currentCard()
		if err := m.sync.ApplyRemoteMove(e.CardID, col); err != nil {
			return nil
		}
		if selected != nil {
			m.selectCard(selected.ID)
		} else {
			m.clampSelection()
		}

	case events.EventCardCreated, events.EventCardDeleted:
		if m.sync.ShouldPoll() {
			return loadBoard(m.sync, reloadPush)
		}

	case events.EventNotification:
		kind, err := notify.ParseKind(e.Kind)
		if err != nil {
			slog.Debug("unknown notification kind", "kind", e.Kind)
		}
		m.center.Notify(e.Message, kind)
	}
	return nil
}
