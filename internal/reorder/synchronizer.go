// Package reorder keeps the column membership shown on the board
// consistent with the server using an optimistic-then-reconcile protocol.
//
// The board is moved first, by the drag itself. The move is then sent to
// the server. On success the column counters are recomputed; on any
// failure the user is told and the whole board is reloaded from the server.
//
// Every method except Pending.Wait and FetchBoard must be called from the
// UI loop that owns the board. Those two block on the network and must
// run elsewhere; their results are handed back to the loop.
package reorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/funil/internal/board"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/notify"
)

// User-facing messages for move outcomes
const (
	MsgMoveSucceeded = "Cartão movido com sucesso!"
	MsgMoveRejected  = "Erro ao mover cartão!"
	MsgConnection    = "Erro de conexão!"
)

// Config tunes the synchronizer's polling task
type Config struct {
	PollEnabled  bool
	PollInterval time.Duration
}

// Synchronizer owns drag capture on the registered columns and the
// round trip of each drop to the Move endpoint.
type Synchronizer struct {
	ctx     context.Context
	board   *board.Board
	mover   client.Mover
	fetcher client.BoardFetcher
	sink    notify.Sink
	poller  *Poller

	pollEnabled bool

	// active is the gesture currently being dragged, if any
	active *Gesture

	// inflight holds the move requests that have not resolved yet
	inflight map[uint64]*Pending
	nextSeq  uint64

	reloads int
	stale   bool
}

// New creates a synchronizer for b. ctx bounds the lifetime of every move
// and reload request; there is no per-request timeout.
func New(ctx context.Context, b *board.Board, mover client.Mover, fetcher client.BoardFetcher, sink notify.Sink, cfg Config) *Synchronizer {
	return &Synchronizer{
		ctx:         ctx,
		board:       b,
		mover:       mover,
		fetcher:     fetcher,
		sink:        sink,
		poller:      NewPoller(cfg.PollInterval),
		pollEnabled: cfg.PollEnabled,
		inflight:    make(map[uint64]*Pending),
	}
}

// Board returns the board the synchronizer mutates
func (s *Synchronizer) Board() *board.Board {
	return s.board
}

// State summarizes the synchronizer: Dragging while a card is held,
// Pending while any request is in flight, Idle otherwise.
func (s *Synchronizer) State() GestureState {
	switch {
	case s.active != nil:
		return s.active.state
	case len(s.inflight) > 0:
		return StatePending
	default:
		return StateIdle
	}
}

// Active returns the gesture being dragged, or nil
func (s *Synchronizer) Active() *Gesture {
	return s.active
}

// InFlight returns the number of unresolved move requests
func (s *Synchronizer) InFlight() int {
	return len(s.inflight)
}

// Reloads returns how many full reloads reconciliation has requested
func (s *Synchronizer) Reloads() int {
	return s.reloads
}

// Stale reports whether the last reload failed, leaving the board
// possibly out of date with the server.
func (s *Synchronizer) Stale() bool {
	return s.stale
}

// ============================================================================
// Drag capture
// ============================================================================

// BeginDrag picks up a card. Only one card can be held at a time.
func (s *Synchronizer) BeginDrag(cardID string) (*Gesture, error) {
	if s.active != nil {
		return nil, ErrGestureActive
	}
	col, idx, ok := s.board.Locate(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", board.ErrCardNotOnBoard, cardID)
	}
	s.active = &Gesture{
		state:       StateDragging,
		cardID:      cardID,
		origin:      col,
		originIndex: idx,
	}
	slog.Debug("drag started", "card_id", cardID, "column", col, "index", idx)
	return s.active, nil
}

// Carry moves the held card to target at index. The board changes at once;
// nothing is sent to the server until the card is dropped.
func (s *Synchronizer) Carry(target models.Column, index int) error {
	if s.active == nil {
		return ErrNoGesture
	}
	if _, err := s.board.Move(s.active.cardID, target, index); err != nil {
		return err
	}
	return nil
}

// CancelDrag puts the held card back where it was picked up.
// No request is sent.
func (s *Synchronizer) CancelDrag() error {
	if s.active == nil {
		return ErrNoGesture
	}
	g := s.active
	s.active = nil
	g.state = StateIdle
	if _, err := s.board.Move(g.cardID, g.origin, g.originIndex); err != nil {
		return fmt.Errorf("failed to restore dragged card: %w", err)
	}
	slog.Debug("drag cancelled", "card_id", g.cardID)
	return nil
}

// Release drops the held card where it currently is and starts the move
// request. See OnDrop.
func (s *Synchronizer) Release() (*Pending, error) {
	if s.active == nil {
		return nil, ErrNoGesture
	}
	g := s.active
	s.active = nil

	col, idx, ok := s.board.Locate(g.cardID)
	if !ok {
		g.state = StateIdle
		return nil, fmt.Errorf("%w: %s", board.ErrCardNotOnBoard, g.cardID)
	}
	g.state = StateDropped

	p, err := s.drop(g, Drop{CardID: g.cardID, Source: g.origin, Target: col, Index: idx})
	if err != nil {
		g.state = StateIdle
		return nil, err
	}
	return p, nil
}

// OnDrop handles a card released over a registered column. The card is
// already at its new position on the board. It validates the drop and
// returns the pending move request; the gesture itself is complete.
// Drops within the source column are moves too and are sent as such.
func (s *Synchronizer) OnDrop(d Drop) (*Pending, error) {
	return s.drop(&Gesture{state: StateDropped, cardID: d.CardID, origin: d.Source}, d)
}

func (s *Synchronizer) drop(g *Gesture, d Drop) (*Pending, error) {
	if d.CardID == "" {
		return nil, models.ErrEmptyCardID
	}
	if !s.board.Registered(d.Target) {
		return nil, fmt.Errorf("%w: %s", board.ErrUnregisteredColumn, d.Target)
	}
	if col, _, ok := s.board.Locate(d.CardID); !ok || col != d.Target {
		return nil, fmt.Errorf("%w: card %s, column %s", ErrCardNotInTarget, d.CardID, d.Target)
	}

	s.nextSeq++
	cmd := models.MoveCommand{CardID: d.CardID, TargetColumn: d.Target}
	p := &Pending{
		Seq:     s.nextSeq,
		Command: cmd,
		Drop:    d,
		gesture: g,
		ctx:     s.ctx,
		mover:   s.mover,
	}
	g.state = StatePending
	s.inflight[p.Seq] = p

	slog.Info("card dropped",
		"seq", p.Seq,
		"card_id", d.CardID,
		"from", d.Source,
		"to", d.Target,
		"index", d.Index)
	return p, nil
}

// ============================================================================
// Reconciliation
// ============================================================================

// Resolution tells the caller what reconciling an outcome decided.
type Resolution struct {
	State GestureState
	// Reload is set when the board must be fully reloaded from the server
	Reload bool
}

// Reconcile applies a resolved move to the board. Outcomes are applied in
// the order they arrive, not the order they were sent: the last response
// wins.
func (s *Synchronizer) Reconcile(o Outcome) Resolution {
	p, ok := s.inflight[o.Seq]
	if ok {
		delete(s.inflight, o.Seq)
	}

	if o.Succeeded() {
		s.board.RefreshCounters()
		s.sink.Notify(MsgMoveSucceeded, notify.KindSuccess)
		if ok {
			p.gesture.state = StateReconciled
		}
		slog.Info("move confirmed", "seq", o.Seq, "card_id", o.Command.CardID, "column", o.Command.TargetColumn)
		return Resolution{State: StateReconciled}
	}

	msg := MsgMoveRejected
	if code, isReq := client.CodeOf(o.Err); isReq && code == client.ErrTransport {
		msg = MsgConnection
	}
	s.sink.Notify(msg, notify.KindError)
	s.reloads++
	if ok {
		p.gesture.state = StateResynchronized
	}
	slog.Warn("move failed, reloading board",
		"seq", o.Seq,
		"card_id", o.Command.CardID,
		"column", o.Command.TargetColumn,
		"server_message", o.Result.Message,
		"error", o.Err)
	return Resolution{State: StateResynchronized, Reload: true}
}

// FetchBoard loads the authoritative board. It blocks on the network and
// must not run on the UI loop.
func (s *Synchronizer) FetchBoard() (models.BoardSnapshot, error) {
	return s.fetcher.Board(s.ctx)
}

// ApplySnapshot replaces the board with a reloaded snapshot. A failed
// reload keeps the current board and marks it stale; the failure has
// already been reported by the move that caused it, so no banner is shown.
// A card being dragged when the reload lands is dropped from the gesture.
func (s *Synchronizer) ApplySnapshot(snap models.BoardSnapshot, err error) {
	if err != nil {
		s.stale = true
		slog.Error("board reload failed", "error", err)
		return
	}
	if s.active != nil {
		slog.Debug("reload aborted drag", "card_id", s.active.cardID)
		s.active.state = StateIdle
		s.active = nil
	}
	s.board.Replace(snap)
	s.stale = false
	slog.Debug("board reloaded", "columns", len(snap.Columns))
}

// ============================================================================
// Push updates
// ============================================================================

// ApplyRemoteMove relocates a card to the end of column without a network
// round trip, as announced by the push-update channel. Unknown cards and
// unregistered columns are ignored with an error. The card being dragged
// is left alone, and a card already shown in column keeps its index.
func (s *Synchronizer) ApplyRemoteMove(cardID string, column models.Column) error {
	if s.active != nil && s.active.cardID == cardID {
		return ErrCardBeingDragged
	}
	if current, _, ok := s.board.Locate(cardID); ok && current == column {
		return nil
	}
	if _, err := s.board.Append(cardID, column); err != nil {
		slog.Debug("ignoring remote move", "card_id", cardID, "column", column, "error", err)
		return err
	}
	s.board.RefreshCounters()
	return nil
}

// ============================================================================
// Polling
// ============================================================================

// Poller returns the synchronizer's polling task
func (s *Synchronizer) Poller() *Poller {
	return s.poller
}

// Activate starts the polling task if polling is enabled
func (s *Synchronizer) Activate() {
	if s.pollEnabled {
		s.poller.Start(s.ctx)
	}
}

// Deactivate stops the polling task
func (s *Synchronizer) Deactivate() {
	s.poller.Stop()
}

// ShouldPoll reports whether a poll tick may reload the board now.
// A reload while a card is held or a move is in flight would discard
// the optimistic state, so ticks are skipped then.
func (s *Synchronizer) ShouldPoll() bool {
	return s.active == nil && len(s.inflight) == 0
}

// Close stops the polling task. The synchronizer must not be used after.
func (s *Synchronizer) Close() {
	s.poller.Stop()
}
