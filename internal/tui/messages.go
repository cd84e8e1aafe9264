package tui

import (
	"time"

	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/reorder"
)

// reloadReason records why the board was fetched, which decides whether
// a failed fetch gets its own banner.
type reloadReason int

const (
	reloadInitial reloadReason = iota
	reloadManual
	reloadAfterMove
	reloadPoll
	reloadPush
	reloadAfterCreate
)

func (r reloadReason) String() string {
	switch r {
	case reloadInitial:
		return "initial"
	case reloadManual:
		return "manual"
	case reloadAfterMove:
		return "after_move"
	case reloadPoll:
		return "poll"
	case reloadPush:
		return "push"
	case reloadAfterCreate:
		return "after_create"
	default:
		return "unknown"
	}
}

// moveResolvedMsg carries a finished move request back to the loop
type moveResolvedMsg struct {
	outcome reorder.Outcome
}

// boardLoadedMsg carries a fetched board snapshot back to the loop
type boardLoadedMsg struct {
	snapshot models.BoardSnapshot
	err      error
	reason   reloadReason
}

// pollTickMsg is one tick of the polling task
type pollTickMsg struct {
	at time.Time
}

// pushEventMsg is one event from the push hub
type pushEventMsg struct {
	event events.Event
}

// pushClosedMsg reports that the push channel is gone for good
type pushClosedMsg struct{}

// bannersChangedMsg asks for a redraw after banners were added or expired
type bannersChangedMsg struct{}

// clientsLoadedMsg carries the client registry for the new card form
type clientsLoadedMsg struct {
	clients []*models.Client
	err     error
}

// cardCreatedMsg carries the result of a submitted new card form
type cardCreatedMsg struct {
	card *models.Card
	err  error
}
