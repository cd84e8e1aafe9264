// Package tui is the terminal board. It renders the pipeline columns,
// turns key presses into drag gestures and hands every drop to the
// reorder synchronizer. All board state is touched only from Update.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/funil/internal/board"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/config/colors"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/notify"
	"github.com/thenoetrevino/funil/internal/reorder"
	"github.com/thenoetrevino/funil/internal/tui/huhforms"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

// Messages shown when a board load fails on its own
const (
	MsgLoadFailed   = "Não foi possível carregar o quadro"
	MsgLiveStopped  = "Atualizações ao vivo encerradas"
	MsgCreateFailed = "Não foi possível criar o cartão"
)

type mode int

const (
	modeNormal mode = iota
	modeDetail
	modeHelp
	modeForm
)

// Options wires the board to the server and the push hub
type Options struct {
	Mover   client.Mover
	Fetcher client.BoardFetcher
	Config  *config.Config

	// Creator enables the new card form; Clients fills its client select
	Creator client.CardCreator
	Clients client.ClientLister

	// Push delivers hub events; nil runs the board without live updates
	Push <-chan events.Event
}

// Model is the bubbletea model of the board
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	sync    *reorder.Synchronizer
	center  *notify.Center
	changes chan struct{}
	push    <-chan events.Event
	live    bool

	creator client.CardCreator
	clients client.ClientLister
	scheme  colors.ColorScheme

	keys config.KeyMappings
	mode mode

	// detail scrolls the card detail pane
	detail viewport.Model

	// new card form, set only in modeForm
	form       *huh.Form
	formValues *huhforms.CardFormValues
	formColumn models.Column

	// selectAfterLoad is selected once the next board load lands
	selectAfterLoad string

	selectedCol  int
	selectedCard int

	width  int
	height int

	loaded   bool
	quitting bool
}

// Compile-time verification that *Model implements tea.Model
var _ tea.Model = (*Model)(nil)

// New creates the board model. The board starts empty and is filled by
// the initial load issued from Init.
func New(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme.Init(cfg.ColorScheme)

	ctx, cancel := context.WithCancel(ctx)
	changes := make(chan struct{}, 1)

	center := notify.NewCenter(notify.Durations{
		Success: cfg.Sync.SuccessDuration,
		Error:   cfg.Sync.ErrorDuration,
		Info:    cfg.Sync.InfoDuration,
	}, notify.WithOnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}))

	s := reorder.New(ctx, board.New(models.BoardSnapshot{}), opts.Mover, opts.Fetcher, center, reorder.Config{
		PollEnabled:  cfg.Sync.PollEnabled,
		PollInterval: cfg.Sync.PollInterval,
	})

	detail := viewport.New()
	detail.MouseWheelEnabled = true

	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		sync:    s,
		center:  center,
		changes: changes,
		push:    opts.Push,
		live:    opts.Push != nil,
		creator: opts.Creator,
		clients: opts.Clients,
		scheme:  cfg.ColorScheme,
		keys:    cfg.KeyMappings,
		detail:  detail,
	}
}

// Init starts the polling task, the listeners and the initial board load
func (m *Model) Init() tea.Cmd {
	m.sync.Activate()
	return tea.Batch(
		loadBoard(m.sync, reloadInitial),
		listenForTicks(m.ctx, m.sync.Poller().Ticks()),
		listenForBanners(m.ctx, m.changes),
		listenForPush(m.ctx, m.push),
	)
}

// PushStatus reports push connection changes as banners. It matches
// events.NotifyFunc and may be called from any goroutine.
func (m *Model) PushStatus(level, message string) {
	switch level {
	case "error", "warning":
		m.center.Notify(message, notify.KindError)
	default:
		m.center.Notify(message, notify.KindInfo)
	}
}

// Close stops the poller, the banner timers and every listener
func (m *Model) Close() {
	m.sync.Close()
	m.center.Close()
	m.cancel()
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.sync.Active() != nil {
		if err := m.sync.CancelDrag(); err != nil {
			slog.Debug("cancel drag on quit", "error", err)
		}
	}
	m.Close()
	return tea.Quit
}

// ============================================================================
// Selection
// ============================================================================

// columns returns the registered columns in board order
func (m *Model) columns() []models.Column {
	return m.sync.Board().Columns()
}

// currentColumn returns the focused column, if any
func (m *Model) currentColumn() (models.Column, bool) {
	cols := m.columns()
	if m.selectedCol < 0 || m.selectedCol >= len(cols) {
		return "", false
	}
	return cols[m.selectedCol], true
}

// currentCard returns the selected card, if any
func (m *Model) currentCard() *models.Card {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	cards := m.sync.Board().Cards(col)
	if m.selectedCard < 0 || m.selectedCard >= len(cards) {
		return nil
	}
	return cards[m.selectedCard]
}

// clampSelection keeps the selection inside the board
func (m *Model) clampSelection() {
	cols := m.columns()
	if len(cols) == 0 {
		m.selectedCol, m.selectedCard = 0, 0
		return
	}
	m.selectedCol = max(0, min(m.selectedCol, len(cols)-1))
	n := m.sync.Board().Count(cols[m.selectedCol])
	m.selectedCard = max(0, min(m.selectedCard, n-1))
}

// selectCard moves the selection onto the card with id
func (m *Model) selectCard(id string) {
	col, idx, ok := m.sync.Board().Locate(id)
	if !ok {
		m.clampSelection()
		return
	}
	for i, c := range m.columns() {
		if c == col {
			m.selectedCol = i
			break
		}
	}
	m.selectedCard = idx
}
